package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

// TestAuthClient_Login проверяет обмен логина/пароля на токен.
func TestAuthClient_Login(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "hsimpson" || body["password"] != "donuts" {
			t.Errorf("неожиданное тело запроса: %v", body)
		}

		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-token"})
	})

	auth := NewAuthClient(newTestClient(t, server.URL, ""))

	tok, err := auth.Login(context.Background(), "hsimpson", "donuts")
	if err != nil {
		t.Fatalf("ошибка Login: %v", err)
	}
	if tok != "jwt-token" {
		t.Errorf("ожидался токен jwt-token, получен %q", tok)
	}
}

// TestAuthClient_Login_Rejected проверяет отказ backend'а с сообщением.
func TestAuthClient_Login_Rejected(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "неверный логин или пароль"})
	})

	auth := NewAuthClient(newTestClient(t, server.URL, ""))

	_, err := auth.Login(context.Background(), "hsimpson", "wrong")
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("ожидался *Error, получен %T: %v", err, err)
	}
	if gwErr.Message != "неверный логин или пароль" {
		t.Errorf("ожидалось сообщение backend'а, получено %q", gwErr.Message)
	}
}

// TestAuthClient_Register проверяет регистрацию.
func TestAuthClient_Register(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Учётная запись создана"})
	})

	auth := NewAuthClient(newTestClient(t, server.URL, ""))

	msg, err := auth.Register(context.Background(), "newuser", "new@example.com", "pass")
	if err != nil {
		t.Fatalf("ошибка Register: %v", err)
	}
	if msg != "Учётная запись создана" {
		t.Errorf("неожиданное сообщение: %q", msg)
	}
}

// TestAuthClient_ForgotPassword проверяет, что тело успешного ответа
// игнорируется — наличие или отсутствие email не раскрывается.
func TestAuthClient_ForgotPassword(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/forgotPassword" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Ответ backend'а намеренно пустой
		w.WriteHeader(http.StatusOK)
	})

	auth := NewAuthClient(newTestClient(t, server.URL, ""))

	if err := auth.ForgotPassword(context.Background(), "any@example.com"); err != nil {
		t.Fatalf("ошибка ForgotPassword: %v", err)
	}
}

// TestAuthClient_Menus проверяет запрос конфигурации меню по роли.
func TestAuthClient_Menus(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/menus" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("roleId"); got != "3" {
			t.Errorf("ожидался roleId=3, получен %q", got)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{
					"application_name": "System",
					"data": []map[string]string{
						{"area_name": "Data Access"},
						{"area_name": "Roles"},
					},
				},
			},
		})
	})

	auth := NewAuthClient(newTestClient(t, server.URL, "tok"))

	groups, err := auth.Menus(context.Background(), 3)
	if err != nil {
		t.Fatalf("ошибка Menus: %v", err)
	}
	if len(groups) != 1 || groups[0].ApplicationName != "System" {
		t.Fatalf("неожиданные группы: %+v", groups)
	}
	if len(groups[0].Data) != 2 || groups[0].Data[0].AreaName != "Data Access" {
		t.Errorf("неожиданные разделы: %+v", groups[0].Data)
	}
}
