package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type config struct {
	a, b int
}

func TestApplyInOrder(t *testing.T) {
	cfg := &config{}
	err := Apply[*config](cfg,
		NoError(func(c *config) { c.a = 1 }),
		NoError(func(c *config) { c.b = c.a + 1 }),
	)
	require.NoError(t, err)
	require.Equal(t, &config{a: 1, b: 2}, cfg)
}

func TestApplyStopsAtError(t *testing.T) {
	errBad := errors.New("bad")
	cfg := &config{}
	err := Apply[*config](cfg,
		New(func(c *config) error { return errBad }),
		NoError(func(c *config) { c.a = 5 }),
	)
	require.ErrorIs(t, err, errBad)
	require.Zero(t, cfg.a)
}

func TestApplyNoOptions(t *testing.T) {
	require.NoError(t, Apply(&config{}))
}
