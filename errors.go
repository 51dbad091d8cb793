package lazystr

import "errors"

// Snapshot errors. They are returned wrapped; test with errors.Is.
var (
	ErrBadMagic           = errors.New("lazystr: not a snapshot")
	ErrUnsupportedVersion = errors.New("lazystr: unsupported snapshot version")
	ErrWidthMismatch      = errors.New("lazystr: snapshot element width does not match store type")
	ErrUnknownCodec       = errors.New("lazystr: unknown codec")
	ErrChecksum           = errors.New("lazystr: snapshot checksum mismatch")
	ErrCorrupt            = errors.New("lazystr: corrupt snapshot")
	ErrTooLarge           = errors.New("lazystr: snapshot exceeds size limit")
)
