// Пакет gateway — HTTP-клиент к control-plane API.
// Каждая операция — ровно один HTTP-запрос без повторов: политика
// retry/backoff, если она нужна, живёт вне консоли. Поддерживает TLS
// с кастомным CA (CM_API_CA_CERT_PATH).
package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// TokenProvider — функция, возвращающая текущий bearer-токен сессии.
// Пустая строка означает «токена нет»: запрос уходит без Authorization,
// решение об отказе принимает backend.
type TokenProvider func() string

// Error — ошибка запроса к backend'у: не-2xx статус или сбой транспорта.
// Status == 0 означает транспортную ошибку (до HTTP-ответа не дошло).
type Error struct {
	Status  int
	Message string
}

// Error реализует error.
func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("backend вернул статус %d: %s", e.Status, e.Message)
}

// Client — HTTP-клиент консоли к control-plane API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	tokenProvider TokenProvider
	logger        *slog.Logger
}

// New создаёт клиент backend API.
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
// tokenProvider — источник bearer-токена (может быть nil для тестов).
func New(baseURL, caCertPath string, tokenProvider TokenProvider, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата backend API: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат backend API добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tokenProvider,
		logger:        logger.With(slog.String("component", "gateway")),
	}, nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// do выполняет один HTTP-запрос к backend'у и декодирует успешный ответ
// в out (nil — тело не интересует). Любой не-2xx статус или сбой
// транспорта превращается в *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация тела запроса %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("создание запроса %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenProvider != nil {
		if tok := c.tokenProvider(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: fmt.Sprintf("backend недоступен: %s", err.Error())}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа %s %s: %w", method, path, err)
	}
	return nil
}

// Ping проверяет достижимость backend API для readiness probe.
// Любой HTTP-ответ считается признаком жизни: нас интересует транспорт,
// а не семантика конкретного пути.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("создание ping-запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: fmt.Sprintf("backend недоступен: %s", err.Error())}
	}
	resp.Body.Close()
	return nil
}

// decodeError извлекает человекочитаемое сообщение из тела ошибки.
// Предпочитается поле "message" из JSON; если его нет — generic-текст.
func decodeError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return &Error{Status: resp.StatusCode, Message: parsed.Message}
	}

	return &Error{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("ошибка запроса к backend (HTTP %d)", resp.StatusCode),
	}
}
