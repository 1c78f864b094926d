package apperror

import "errors"

var (
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnknownStorage = errors.New("unknown storage driver")
)
