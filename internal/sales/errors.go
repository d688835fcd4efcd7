package sales

import "errors"

// ValidationError: herhangi bir yazma işleminden önce yakalanan giriş hatası.
// Handler katmanında 400'e çevrilir.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// IsValidation: hata bir ValidationError mı?
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
