package tool

import "errors"

// ErrUnavailable indicates the tool server could not be reached or failed
// its protocol handshake. The system prompt asserts tool availability, so
// an exchange must abort rather than run without tools.
var ErrUnavailable = errors.New("tool: server unavailable")
