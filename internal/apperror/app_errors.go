package apperror

import "errors"

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrMessageTooLarge  = errors.New("message exceeds size limit")
	ErrConnectionClosed = errors.New("connection closed")
)
