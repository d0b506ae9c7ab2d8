// Пакет token — декодер bearer-токена сессии.
// Токен разбирается как JWT без проверки подписи: криптографическая
// валидация — зона ответственности backend'а (он же выдаёт токен и
// авторизует каждый запрос). Консоль читает claims исключительно для
// нужд UI: имя пользователя, роль, срок действия. Это осознанное
// ослабление доверия, а не дефект.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken — токен не разбирается как JWT с ожидаемыми claims.
var ErrMalformedToken = errors.New("некорректный формат токена")

// Claims — типизированные данные, извлечённые из токена.
// Все поля обязательны: токен без любого из них считается некорректным.
type Claims struct {
	// Subject — идентификатор пользователя (sub).
	Subject string
	// Username — отображаемое имя пользователя.
	Username string
	// RoleID — идентификатор роли, используется для запроса меню.
	RoleID int64
	// ExpiresAt — срок действия токена.
	ExpiresAt time.Time
}

// Expired возвращает true, если токен истёк на момент now.
func (c *Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// rawClaims — структура claims для разбора JWT payload.
type rawClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	RoleID   *int64 `json:"role_id"`
}

// Decode разбирает токен и возвращает типизированные claims.
// Чистая функция: без сети и побочных эффектов. Срок действия НЕ
// проверяется — это делает Session Store при каждом использовании.
// Возвращает ErrMalformedToken, если токен не разбирается или в нём
// отсутствует обязательное поле.
func Decode(tokenString string) (*Claims, error) {
	var raw rawClaims
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(tokenString, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedToken, err.Error())
	}

	if raw.Subject == "" {
		return nil, fmt.Errorf("%w: отсутствует claim sub", ErrMalformedToken)
	}
	if raw.Username == "" {
		return nil, fmt.Errorf("%w: отсутствует claim username", ErrMalformedToken)
	}
	if raw.RoleID == nil {
		return nil, fmt.Errorf("%w: отсутствует claim role_id", ErrMalformedToken)
	}
	if raw.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: отсутствует claim exp", ErrMalformedToken)
	}

	return &Claims{
		Subject:   raw.Subject,
		Username:  raw.Username,
		RoleID:    *raw.RoleID,
		ExpiresAt: raw.ExpiresAt.Time,
	}, nil
}
