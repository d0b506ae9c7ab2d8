package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestTokenEncryptDecryptRoundTrip проверяет шифрование и дешифрование токена.
func TestTokenEncryptDecryptRoundTrip(t *testing.T) {
	cm, err := NewCookieManager("", time.Hour, false)
	if err != nil {
		t.Fatalf("Ошибка создания CookieManager: %v", err)
	}

	original := "eyJhbGciOiJIUzI1NiJ9.test-token-12345"

	encrypted, err := cm.Encrypt(original)
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}
	if encrypted == "" {
		t.Fatal("Зашифрованная строка пустая")
	}
	if encrypted == original {
		t.Fatal("Токен не должен храниться открытым текстом")
	}

	decrypted, err := cm.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Ошибка дешифрования: %v", err)
	}
	if decrypted != original {
		t.Errorf("Токен: want %q, got %q", original, decrypted)
	}
}

// TestCookieManagerWithStringKey проверяет инициализацию с произвольной строкой-ключом.
func TestCookieManagerWithStringKey(t *testing.T) {
	cm, err := NewCookieManager("my-secret-key-for-testing", time.Hour, false)
	if err != nil {
		t.Fatalf("Ошибка создания CookieManager со string-ключом: %v", err)
	}

	encrypted, err := cm.Encrypt("token123")
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}
	decrypted, err := cm.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Ошибка дешифрования: %v", err)
	}
	if decrypted != "token123" {
		t.Errorf("Токен: want %q, got %q", "token123", decrypted)
	}
}

// TestTokenDecryptWithWrongKey проверяет, что дешифрование чужим ключом не работает.
func TestTokenDecryptWithWrongKey(t *testing.T) {
	cm1, _ := NewCookieManager("key-one", time.Hour, false)
	cm2, _ := NewCookieManager("key-two", time.Hour, false)

	encrypted, err := cm1.Encrypt("secret")
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}

	// Попытка дешифрования другим ключом должна завершиться ошибкой
	if _, err = cm2.Decrypt(encrypted); err == nil {
		t.Error("Ожидалась ошибка при дешифровании чужим ключом")
	}
}

// TestTokenDecryptGarbage проверяет отказ на повреждённых данных.
func TestTokenDecryptGarbage(t *testing.T) {
	cm, _ := NewCookieManager("key", time.Hour, false)

	for _, input := range []string{"", "not-base64!!!", "dG9vLXNob3J0"} {
		if _, err := cm.Decrypt(input); err == nil {
			t.Errorf("Ожидалась ошибка дешифрования для %q", input)
		}
	}
}

// TestSetAndReadTokenCookie проверяет полный цикл: установка cookie,
// чтение из запроса.
func TestSetAndReadTokenCookie(t *testing.T) {
	cm, _ := NewCookieManager("key", time.Hour, false)

	rec := httptest.NewRecorder()
	if err := cm.SetTokenCookie(rec, "the-token"); err != nil {
		t.Fatalf("Ошибка установки cookie: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Ожидался один cookie, получено %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != TokenCookieName {
		t.Errorf("Имя cookie: want %q, got %q", TokenCookieName, c.Name)
	}
	if !c.HttpOnly {
		t.Error("Cookie должен быть HttpOnly")
	}
	if c.MaxAge != 3600 {
		t.Errorf("MaxAge: want 3600, got %d", c.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(c)

	token, err := cm.TokenFromRequest(req)
	if err != nil {
		t.Fatalf("Ошибка чтения токена из запроса: %v", err)
	}
	if token != "the-token" {
		t.Errorf("Токен: want %q, got %q", "the-token", token)
	}
}

// TestTokenFromRequest_NoCookie: отсутствие cookie — не ошибка.
func TestTokenFromRequest_NoCookie(t *testing.T) {
	cm, _ := NewCookieManager("key", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	token, err := cm.TokenFromRequest(req)
	if err != nil {
		t.Fatalf("Отсутствие cookie не должно быть ошибкой: %v", err)
	}
	if token != "" {
		t.Errorf("Ожидался пустой токен, получено %q", token)
	}
}

// TestClearTokenCookie проверяет удаление cookie.
func TestClearTokenCookie(t *testing.T) {
	cm, _ := NewCookieManager("key", time.Hour, false)

	rec := httptest.NewRecorder()
	cm.ClearTokenCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Ожидался один cookie, получено %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("MaxAge: want -1, got %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("Значение должно быть пустым, получено %q", cookies[0].Value)
	}
}
