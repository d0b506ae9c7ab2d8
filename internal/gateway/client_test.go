package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/bigkaa/goconsole/internal/domain/model"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockBackend создаёт mock HTTP-сервер backend API.
func setupMockBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestClient создаёт клиент с фиксированным токеном.
func newTestClient(t *testing.T, baseURL, tok string) *Client {
	t.Helper()
	client, err := New(baseURL, "", func() string { return tok }, testLogger())
	if err != nil {
		t.Fatalf("ошибка создания клиента: %v", err)
	}
	return client
}

// TestResource_List проверяет список с флагами прав и bearer-заголовок.
func TestResource_List(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dataAccesses" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("ожидался Authorization=Bearer tok-1, получен %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"id": 1, "name": "Public", "level": "1"},
				{"id": 2, "name": "Internal", "level": "3"},
			},
			"editable": map[string]bool{"create": true, "update": true, "delete": false, "editable": true},
		})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok-1"), "/dataAccesses", "data_access")

	items, flags, err := res.List(context.Background())
	if err != nil {
		t.Fatalf("ошибка List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(items))
	}
	if items[0].Name != "Public" || items[1].Level != "3" {
		t.Errorf("неожиданные записи: %+v", items)
	}
	if !flags.Create || !flags.Update || flags.Delete {
		t.Errorf("неожиданные флаги: %+v", flags)
	}
}

// TestResource_List_NoToken: без токена запрос уходит без Authorization —
// отсутствие сессии не является ошибкой на этом уровне.
func TestResource_List_NoToken(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("запрос без токена не должен содержать Authorization")
		}
		json.NewEncoder(w).Encode(map[string]any{"result": []any{}})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, ""), "/dataAccesses", "data_access")

	if _, _, err := res.List(context.Background()); err != nil {
		t.Fatalf("ошибка List: %v", err)
	}
}

// TestResource_Get проверяет запрос одной записи.
func TestResource_Get(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dataAccesses/7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"result":   map[string]any{"id": 7, "name": "Secret", "level": "5"},
			"editable": map[string]bool{"update": true},
		})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	item, flags, err := res.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("ошибка Get: %v", err)
	}
	if item.ID != 7 || item.Name != "Secret" {
		t.Errorf("неожиданная запись: %+v", item)
	}
	if !flags.Update || flags.Create {
		t.Errorf("неожиданные флаги: %+v", flags)
	}
}

// TestResource_Create проверяет создание и разбор ответа по item key.
func TestResource_Create(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/dataAccesses" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var body model.DataAccess
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("ошибка разбора тела запроса: %v", err)
		}
		if body.Name != "X" || body.Level != "2" {
			t.Errorf("неожиданное тело запроса: %+v", body)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"data_access": map[string]any{"id": 7, "name": "X", "level": "2"},
			"message":     "Created",
		})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	item, msg, err := res.Create(context.Background(), model.DataAccess{Name: "X", Level: "2"})
	if err != nil {
		t.Fatalf("ошибка Create: %v", err)
	}
	if item.ID != 7 {
		t.Errorf("ожидался id=7, получен %d", item.ID)
	}
	if msg != "Created" {
		t.Errorf("ожидалось сообщение Created, получено %q", msg)
	}
}

// TestResource_Update проверяет PUT с частичным телом.
func TestResource_Update(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/dataAccesses/3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data_access": map[string]any{"id": 3, "name": "Renamed", "level": "4"},
			"message":     "Updated",
		})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	item, msg, err := res.Update(context.Background(), 3, model.DataAccess{Name: "Renamed", Level: "4"})
	if err != nil {
		t.Fatalf("ошибка Update: %v", err)
	}
	if item.Name != "Renamed" || msg != "Updated" {
		t.Errorf("неожиданный результат: %+v, %q", item, msg)
	}
}

// TestResource_Delete проверяет DELETE и сообщение из ответа.
func TestResource_Delete(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/dataAccesses/3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Deleted"})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	msg, err := res.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("ошибка Delete: %v", err)
	}
	if msg != "Deleted" {
		t.Errorf("ожидалось сообщение Deleted, получено %q", msg)
	}
}

// TestClient_ErrorMessage проверяет извлечение сообщения из тела ошибки.
func TestClient_ErrorMessage(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "запись уже существует"})
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	_, _, err := res.Create(context.Background(), model.DataAccess{Name: "X", Level: "2"})
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("ожидался *Error, получен %T: %v", err, err)
	}
	if gwErr.Status != http.StatusConflict {
		t.Errorf("ожидался статус 409, получен %d", gwErr.Status)
	}
	if gwErr.Message != "запись уже существует" {
		t.Errorf("ожидалось сообщение из тела, получено %q", gwErr.Message)
	}
}

// TestClient_ErrorWithoutMessage: тело без поля message — generic-текст.
func TestClient_ErrorWithoutMessage(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	_, _, err := res.List(context.Background())
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("ожидался *Error, получен %T: %v", err, err)
	}
	if gwErr.Status != http.StatusInternalServerError {
		t.Errorf("ожидался статус 500, получен %d", gwErr.Status)
	}
	if gwErr.Message == "" {
		t.Error("ожидалось generic-сообщение об ошибке")
	}
}

// TestClient_TransportError: backend выключен — *Error со статусом 0.
func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // сразу гасим, чтобы получить connection refused

	res := NewResource[model.DataAccess](newTestClient(t, server.URL, "tok"), "/dataAccesses", "data_access")

	_, _, err := res.List(context.Background())
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("ожидался *Error, получен %T: %v", err, err)
	}
	if gwErr.Status != 0 {
		t.Errorf("транспортная ошибка должна иметь статус 0, получен %d", gwErr.Status)
	}
}

// TestClient_Ping проверяет readiness-проверку достижимости backend'а.
func TestClient_Ping(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		// Даже 404 означает «транспорт жив»
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, server.URL, "")
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping по живому backend'у не должен давать ошибку: %v", err)
	}

	server.Close()
	if err := client.Ping(context.Background()); err == nil {
		t.Error("Ping по мёртвому backend'у должен давать ошибку")
	}
}
