package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalid            = errors.New("invalid")
	ErrInternal           = errors.New("internal")
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrContentUnavailable = errors.New("content unavailable")
	ErrTooLarge           = errors.New("too large")
	ErrConflict           = errors.New("conflict")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

func IsContentUnavailable(err error) bool {
	return errors.Is(err, ErrContentUnavailable)
}
