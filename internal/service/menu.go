// menu.go — резолвер меню навигации.
// Конфигурация меню запрашивается у backend'а один раз за сессию для
// роли текущего пользователя, кэшируется до logout и сбрасывается
// fan-out'ом вместе с остальными кэшами.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bigkaa/goconsole/internal/domain/model"
	"github.com/bigkaa/goconsole/internal/gateway"
)

// MenuService — кэширующий резолвер серверной конфигурации меню.
type MenuService struct {
	auth   *gateway.AuthClient
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	roleID int64
	groups []model.MenuGroup
}

// NewMenuService создаёт резолвер меню.
func NewMenuService(auth *gateway.AuthClient, logger *slog.Logger) *MenuService {
	return &MenuService{
		auth:   auth,
		logger: logger.With(slog.String("component", "menu")),
	}
}

// Groups возвращает конфигурацию меню для роли, запрашивая её у
// backend'а при первом обращении. Повторные вызовы в рамках сессии
// отдают кэш; смена роли (новый вход) сбрасывает кэш через Reset.
func (m *MenuService) Groups(ctx context.Context, roleID int64) ([]model.MenuGroup, error) {
	m.mu.Lock()
	if m.loaded && m.roleID == roleID {
		groups := m.groups
		m.mu.Unlock()
		return groups, nil
	}
	m.mu.Unlock()

	groups, err := m.auth.Menus(ctx, roleID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.loaded = true
	m.roleID = roleID
	m.groups = groups
	m.mu.Unlock()

	m.logger.Debug("Конфигурация меню загружена",
		slog.Int64("role_id", roleID),
		slog.Int("groups", len(groups)),
	)
	return groups, nil
}

// AreasFor возвращает упорядоченные имена разделов указанного приложения
// для роли. Отсутствующее приложение — пустой список, раздел навигации
// просто не отображается.
func (m *MenuService) AreasFor(ctx context.Context, roleID int64, application string) ([]string, error) {
	groups, err := m.Groups(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return model.AreasFor(groups, application), nil
}

// Reset сбрасывает кэшированную конфигурацию меню. Вызывается
// fan-out'ом Session Store при logout.
func (m *MenuService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = false
	m.roleID = 0
	m.groups = nil
}
