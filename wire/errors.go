package wire

import "errors"

// Wire-level decoding/encoding errors.
var (
	ErrUnexpectedEOF       = errors.New("unexpected EOF")
	ErrVarintOverflow      = errors.New("varint overflow")
	ErrVarintTooLong       = errors.New("varint too long")
	ErrTruncated           = errors.New("truncated input")
	ErrInvalidFieldNumber  = errors.New("invalid field number")
	ErrReservedFieldNumber = errors.New("reserved field number")
	ErrInvalidWireType     = errors.New("invalid wire type")
	ErrGroupNotSupported   = errors.New("group wire type not supported as a value")
	ErrUnbalancedGroup     = errors.New("unbalanced group")
)
