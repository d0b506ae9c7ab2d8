// errors.go — ошибки сервисного слоя консоли.
package service

import (
	"errors"
	"fmt"
)

// ErrValidation — базовая ошибка локальной валидации формы.
var ErrValidation = errors.New("ошибка валидации")

// ValidationError — не заполнено обязательное поле формы.
// Проверка выполняется локально, до обращения к backend'у; сообщается
// только первое незаполненное поле, порядок проверки детерминирован.
type ValidationError struct {
	// Field — имя первого незаполненного поля.
	Field string
}

// Error реализует error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("поле %q обязательно для заполнения", e.Field)
}

// Unwrap позволяет errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
