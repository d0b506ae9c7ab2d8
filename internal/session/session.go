// Пакет session — состояние аутентификации консоли.
// Store владеет токеном и производным от него пользователем; каждое
// изменение состояния зеркалируется в долговременное хранилище, чтобы
// Initialize мог восстановить сессию после перезагрузки.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bigkaa/goconsole/internal/token"
)

// ErrInvalidSession — токен не принят при входе (не разбирается или
// уже истёк). Для пользователя это «войдите заново», не сбой процесса.
var ErrInvalidSession = errors.New("недействительная сессия — войдите заново")

// Store — хранилище состояния сессии.
// Инвариант: user != nil тогда и только тогда, когда токен установлен
// и не истёк. Пользователь всегда вычисляется из токена и отдельно
// не устанавливается.
type Store struct {
	mu      sync.Mutex
	storage Storage
	tok     string
	user    *token.Claims
	// resetFns — коллбэки сброса зависимых кэшей, fan-out при logout.
	// Кэши независимы: порядок вызова не имеет значения.
	resetFns []func()
	// now — источник времени, подменяется в тестах.
	now    func() time.Time
	logger *slog.Logger
}

// New создаёт Store поверх указанного хранилища токена.
func New(storage Storage, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		now:     time.Now,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// OnReset регистрирует коллбэк сброса зависимого кэша.
// Все зарегистрированные коллбэки вызываются при каждом logout.
func (s *Store) OnReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetFns = append(s.resetFns, fn)
}

// Initialize восстанавливает сессию из долговременного хранилища.
// Отсутствующий, некорректный или истёкший токен приводит к чистому
// logged-out состоянию с очисткой хранилища; ошибкой это не считается.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("чтение сохранённого токена: %w", err)
	}
	if tok == "" {
		s.clearLocked()
		return nil
	}

	claims, err := token.Decode(tok)
	if err != nil || claims.Expired(s.now()) {
		if err != nil {
			s.logger.Debug("Сохранённый токен некорректен, сессия сброшена",
				slog.String("error", err.Error()),
			)
		} else {
			s.logger.Debug("Сохранённый токен истёк, сессия сброшена",
				slog.String("username", claims.Username),
			)
		}
		s.clearLocked()
		return nil
	}

	s.tok = tok
	s.user = claims
	return nil
}

// LoginWith устанавливает сессию по токену, выданному backend'ом.
// Некорректный или истёкший токен — ErrInvalidSession; состояние и
// хранилище при этом гарантированно очищены.
func (s *Store) LoginWith(tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := token.Decode(tok)
	if err != nil {
		s.clearLocked()
		return fmt.Errorf("%w: %s", ErrInvalidSession, err.Error())
	}
	if claims.Expired(s.now()) {
		s.clearLocked()
		return fmt.Errorf("%w: срок действия токена истёк", ErrInvalidSession)
	}

	s.tok = tok
	s.user = claims
	if err := s.storage.Save(tok); err != nil {
		return fmt.Errorf("сохранение токена: %w", err)
	}

	s.logger.Info("Пользователь вошёл в систему",
		slog.String("username", claims.Username),
		slog.Int64("role_id", claims.RoleID),
	)
	return nil
}

// Logout очищает сессию и хранилище и рассылает сброс всем
// зарегистрированным кэшам. Сброс безусловный и полный: каждый кэш
// очищается независимо от остальных.
func (s *Store) Logout() {
	s.mu.Lock()
	username := ""
	if s.user != nil {
		username = s.user.Username
	}
	s.clearLocked()
	fns := make([]func(), len(s.resetFns))
	copy(fns, s.resetFns)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	if username != "" {
		s.logger.Info("Пользователь вышел из системы",
			slog.String("username", username),
		)
	}
}

// Token возвращает текущий bearer-токен или пустую строку.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

// User возвращает копию claims текущего пользователя или nil,
// если сессия не установлена.
func (s *Store) User() *token.Claims {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated возвращает true, если сессия установлена и не истекла.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && !s.user.Expired(s.now())
}

// Expired возвращает true, если сессия была установлена, но токен
// истёк. Вызывающий обязан отреагировать как на logout.
func (s *Store) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Expired(s.now())
}

// clearLocked очищает состояние и долговременное хранилище.
// Вызывается с захваченным мьютексом.
func (s *Store) clearLocked() {
	s.tok = ""
	s.user = nil
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("Ошибка очистки хранилища токена",
			slog.String("error", err.Error()),
		)
	}
}
