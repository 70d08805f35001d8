package wire

import "errors"

var (
	// ErrFormat reports malformed input: bad GLB framing, malformed JSON,
	// an unsupported asset version, or an out-of-range index.
	ErrFormat = errors.New("format error")

	// ErrResource reports a referenced buffer or image that could not be
	// resolved. Fatal under strict reading, recovered with a nil payload
	// otherwise.
	ErrResource = errors.New("resource error")

	// ErrUsage reports a programmer fault: use of a disposed or foreign
	// property, an unsupported component type, or an invalid layout
	// configuration. Never recovered.
	ErrUsage = errors.New("usage error")
)
