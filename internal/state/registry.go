package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bigkaa/goconsole/internal/session"
)

// DefaultSweepInterval — период фоновой очистки реестра от истёкших
// сессий.
const DefaultSweepInterval = 10 * time.Minute

// defaultMaxStates — предел числа состояний в реестре. Достижение
// предела означает наплыв поддельных или брошенных токенов: новые
// состояния при заполненном реестре не удерживаются.
const defaultMaxStates = 10000

// Registry хранит состояния активных сессий по значению токена.
// Состояние создаётся при первом запросе с данным токеном и живёт,
// пока сессия не завершится logout'ом, не истечёт токен или его не
// удалит фоновая очистка.
type Registry struct {
	factory *Factory
	logger  *slog.Logger

	mu        sync.Mutex
	states    map[string]*State
	maxStates int

	sweepDone chan struct{}
}

// NewRegistry создаёт реестр состояний сессий.
func NewRegistry(factory *Factory, logger *slog.Logger) *Registry {
	return &Registry{
		factory:   factory,
		logger:    logger.With(slog.String("component", "state-registry")),
		states:    map[string]*State{},
		maxStates: defaultMaxStates,
	}
}

// GetOrCreate возвращает состояние сессии для токена, создавая его при
// первом обращении. Пустой токен — анонимная сессия без записи в
// реестре: каждому неаутентифицированному запросу своё состояние.
// При заполненном реестре новое состояние возвращается, но не
// удерживается.
func (r *Registry) GetOrCreate(tok string) (*State, error) {
	if tok == "" {
		return r.factory.New(session.NewMemoryStorage(""))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.states[tok]; ok {
		return st, nil
	}

	st, err := r.factory.New(session.NewMemoryStorage(tok))
	if err != nil {
		return nil, err
	}

	// Initialize мог отбраковать токен (истёк, повреждён) — такое
	// состояние в реестре не задерживается.
	if !st.Session.Authenticated() {
		return st, nil
	}

	if len(r.states) >= r.maxStates {
		r.sweepLocked()
	}
	if len(r.states) >= r.maxStates {
		r.logger.Warn("Реестр сессий заполнен, состояние не удержано",
			slog.Int("active", len(r.states)),
		)
		return st, nil
	}

	r.states[tok] = st
	r.logger.Debug("Создано состояние сессии", slog.Int("active", len(r.states)))
	return st, nil
}

// Drop удаляет состояние сессии из реестра. Вызывается при logout и при
// отбраковке истёкшего токена.
func (r *Registry) Drop(tok string) {
	if tok == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, tok)
}

// Sweep удаляет из реестра состояния завершённых и истёкших сессий.
// Возвращает число удалённых состояний.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	removed := 0
	for tok, st := range r.states {
		if !st.Session.Authenticated() {
			delete(r.states, tok)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("Очистка реестра сессий",
			slog.Int("removed", removed),
			slog.Int("active", len(r.states)),
		)
	}
	return removed
}

// StartSweeper запускает фоновую периодическую очистку реестра.
func (r *Registry) StartSweeper(interval time.Duration) {
	r.sweepDone = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-r.sweepDone:
				return
			}
		}
	}()
}

// StopSweeper останавливает фоновую очистку реестра.
func (r *Registry) StopSweeper() {
	if r.sweepDone != nil {
		close(r.sweepDone)
		r.sweepDone = nil
	}
}

// Len возвращает число активных сессий.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
