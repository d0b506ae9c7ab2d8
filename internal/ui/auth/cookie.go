// Пакет auth — хранение токена сессии консоли в браузерном cookie.
// Единственное значение, переживающее перезагрузку страницы, — это сам
// токен; всё остальное состояние сессии восстанавливается из него.
// Cookie шифруется AES-256-GCM.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Имя cookie с зашифрованным токеном сессии.
const TokenCookieName = "console_token"

// CookieManager шифрует и дешифрует токен сессии в HTTP cookie
// через AES-256-GCM.
type CookieManager struct {
	// gcm — AEAD cipher для шифрования/дешифрования.
	gcm cipher.AEAD
	// maxAge — время жизни cookie.
	maxAge time.Duration
	// secure — использовать Secure flag для cookie (true для HTTPS).
	secure bool
}

// NewCookieManager создаёт менеджер cookie сессии.
// key — ключ для AES-256-GCM: base64-строка 32 байт или произвольная
// строка (хешируется SHA-256 до 32 байт).
// Если key пустой — генерируется случайный ключ (непостоянный между рестартами).
func NewCookieManager(key string, maxAge time.Duration, secure bool) (*CookieManager, error) {
	var keyBytes []byte

	if key == "" {
		// Автогенерация ключа (32 bytes = AES-256)
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		// Декодируем base64-ключ или используем как raw bytes
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			// Если не base64 — хешируем строку до 32 bytes через SHA-256
			// (для удобства конфигурации)
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &CookieManager{
		gcm:    gcm,
		maxAge: maxAge,
		secure: secure,
	}, nil
}

// Encrypt шифрует токен и возвращает base64-строку.
func (cm *CookieManager) Encrypt(token string) (string, error) {
	// Генерируем уникальный nonce для каждого шифрования
	nonce := make([]byte, cm.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	// Шифруем с аутентификацией (nonce prepended к ciphertext)
	ciphertext := cm.gcm.Seal(nonce, nonce, []byte(token), nil)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку обратно в токен.
func (cm *CookieManager) Decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := cm.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := cm.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка дешифрования токена сессии: %w", err)
	}

	return string(plaintext), nil
}

// SetTokenCookie устанавливает зашифрованный cookie с токеном в ответ.
func (cm *CookieManager) SetTokenCookie(w http.ResponseWriter, token string) error {
	encrypted, err := cm.Encrypt(token)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    encrypted,
		Path:     "/",
		MaxAge:   int(cm.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// TokenFromRequest извлекает и дешифрует токен из cookie запроса.
// Возвращает "", nil если cookie отсутствует.
func (cm *CookieManager) TokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", err
	}

	return cm.Decrypt(cookie.Value)
}

// ClearTokenCookie удаляет cookie сессии из ответа (logout).
func (cm *CookieManager) ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sha256Key хеширует строковый ключ в 32 bytes через SHA-256.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
