// auth.go — операции аутентификации и конфигурации меню.
// Пароли никогда не обрабатываются локально: формы логина и регистрации
// пересылаются backend'у как есть, консоль видит только выданный токен.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bigkaa/goconsole/internal/domain/model"
)

// AuthClient — клиент аутентификационных endpoint'ов backend'а.
type AuthClient struct {
	client *Client
}

// NewAuthClient создаёт клиент аутентификации поверх базового клиента.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// Login обменивает логин/пароль на bearer-токен.
// POST /auth/login {username, password} → {token}.
func (a *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("backend не вернул токен в ответе на вход")
	}
	return resp.Token, nil
}

// Register регистрирует нового пользователя.
// POST /auth/register {username, email, password} → {message}.
func (a *AuthClient) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ForgotPassword запрашивает сброс пароля по email.
// Тело успешного ответа намеренно игнорируется: пользователю всегда
// показывается одно и то же сообщение, существование email не
// раскрывается (защита от перебора адресов).
func (a *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return a.client.do(ctx, http.MethodPost, "/auth/forgotPassword", body, nil)
}

// Menus запрашивает конфигурацию меню для роли.
// GET /menus?roleId={id} → {result: [{application_name, data: [...]}]}.
func (a *AuthClient) Menus(ctx context.Context, roleID int64) ([]model.MenuGroup, error) {
	var resp struct {
		Result []model.MenuGroup `json:"result"`
	}
	path := fmt.Sprintf("/menus?roleId=%d", roleID)
	if err := a.client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}
