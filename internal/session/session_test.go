package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testLogger создаёт заглушённый logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signToken собирает тестовый JWT с полным набором claims.
func signToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "u-1",
		"username": username,
		"role_id":  int64(2),
		"exp":      exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("ошибка сборки тестового токена: %v", err)
	}
	return tok
}

// assertLoggedOut проверяет logged-out состояние и пустое хранилище.
func assertLoggedOut(t *testing.T, s *Store, storage *MemoryStorage) {
	t.Helper()
	if s.Authenticated() {
		t.Error("ожидалось logged-out состояние")
	}
	if s.Token() != "" {
		t.Error("токен должен быть очищен")
	}
	if s.User() != nil {
		t.Error("пользователь должен быть nil")
	}
	if saved, _ := storage.Load(); saved != "" {
		t.Errorf("хранилище должно быть очищено, содержит %q", saved)
	}
}

// TestStore_Initialize_RestoresSession проверяет восстановление сессии
// из сохранённого непросроченного токена.
func TestStore_Initialize_RestoresSession(t *testing.T) {
	tok := signToken(t, "hsimpson", time.Now().Add(time.Hour))
	storage := NewMemoryStorage(tok)
	s := New(storage, testLogger())

	if err := s.Initialize(); err != nil {
		t.Fatalf("ошибка Initialize: %v", err)
	}

	if !s.Authenticated() {
		t.Fatal("ожидалась восстановленная сессия")
	}
	if s.Token() != tok {
		t.Error("токен должен совпадать с сохранённым")
	}
	user := s.User()
	if user == nil || user.Username != "hsimpson" {
		t.Errorf("неожиданный пользователь: %+v", user)
	}
}

// TestStore_Initialize_EmptyStorage проверяет чистый старт без токена.
func TestStore_Initialize_EmptyStorage(t *testing.T) {
	storage := NewMemoryStorage("")
	s := New(storage, testLogger())

	if err := s.Initialize(); err != nil {
		t.Fatalf("ошибка Initialize: %v", err)
	}
	assertLoggedOut(t, s, storage)
}

// TestStore_Initialize_ExpiredToken: истёкший сохранённый токен приводит
// к logged-out состоянию и очистке хранилища, без ошибки.
func TestStore_Initialize_ExpiredToken(t *testing.T) {
	tok := signToken(t, "hsimpson", time.Now().Add(-time.Minute))
	storage := NewMemoryStorage(tok)
	s := New(storage, testLogger())

	if err := s.Initialize(); err != nil {
		t.Fatalf("истёкший токен не должен давать ошибку, получена %v", err)
	}
	assertLoggedOut(t, s, storage)
}

// TestStore_Initialize_MalformedToken: мусор в хранилище равносилен logout.
func TestStore_Initialize_MalformedToken(t *testing.T) {
	storage := NewMemoryStorage("not-a-jwt")
	s := New(storage, testLogger())

	if err := s.Initialize(); err != nil {
		t.Fatalf("некорректный токен не должен давать ошибку, получена %v", err)
	}
	assertLoggedOut(t, s, storage)
}

// TestStore_LoginWith проверяет установку сессии и зеркалирование токена
// в долговременное хранилище.
func TestStore_LoginWith(t *testing.T) {
	storage := NewMemoryStorage("")
	s := New(storage, testLogger())
	tok := signToken(t, "mburns", time.Now().Add(time.Hour))

	if err := s.LoginWith(tok); err != nil {
		t.Fatalf("ошибка LoginWith: %v", err)
	}

	if !s.Authenticated() {
		t.Fatal("ожидалась установленная сессия")
	}
	if saved, _ := storage.Load(); saved != tok {
		t.Error("токен должен быть сохранён в долговременное хранилище")
	}
	if user := s.User(); user == nil || user.Username != "mburns" {
		t.Errorf("неожиданный пользователь: %+v", user)
	}
}

// TestStore_LoginWith_ExpiredToken: вход по истёкшему токену — отказ,
// состояние и хранилище очищены.
func TestStore_LoginWith_ExpiredToken(t *testing.T) {
	storage := NewMemoryStorage("stale")
	s := New(storage, testLogger())
	tok := signToken(t, "mburns", time.Now().Add(-time.Minute))

	err := s.LoginWith(tok)
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("ожидался ErrInvalidSession, получен %v", err)
	}
	assertLoggedOut(t, s, storage)
}

// TestStore_LoginWith_MalformedToken: вход по мусору — тот же отказ.
func TestStore_LoginWith_MalformedToken(t *testing.T) {
	storage := NewMemoryStorage("")
	s := New(storage, testLogger())

	err := s.LoginWith("garbage")
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("ожидался ErrInvalidSession, получен %v", err)
	}
	assertLoggedOut(t, s, storage)
}

// TestStore_Logout_FanOut проверяет безусловный сброс всех
// зарегистрированных кэшей при logout.
func TestStore_Logout_FanOut(t *testing.T) {
	storage := NewMemoryStorage("")
	s := New(storage, testLogger())

	var resets [3]bool
	for i := range resets {
		i := i
		s.OnReset(func() { resets[i] = true })
	}

	tok := signToken(t, "hsimpson", time.Now().Add(time.Hour))
	if err := s.LoginWith(tok); err != nil {
		t.Fatalf("ошибка LoginWith: %v", err)
	}

	s.Logout()

	assertLoggedOut(t, s, storage)
	for i, called := range resets {
		if !called {
			t.Errorf("коллбэк сброса %d не был вызван", i)
		}
	}
}

// TestStore_Expired проверяет обнаружение истечения токена по ходу сессии.
func TestStore_Expired(t *testing.T) {
	storage := NewMemoryStorage("")
	s := New(storage, testLogger())
	tok := signToken(t, "hsimpson", time.Now().Add(time.Minute))

	if err := s.LoginWith(tok); err != nil {
		t.Fatalf("ошибка LoginWith: %v", err)
	}
	if s.Expired() {
		t.Fatal("сессия не должна быть истёкшей сразу после входа")
	}

	// Сдвигаем часы за срок действия токена
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if !s.Expired() {
		t.Error("ожидалось обнаружение истечения")
	}
	if s.Authenticated() {
		t.Error("истёкшая сессия не считается аутентифицированной")
	}
}
