// Пакет state собирает долгоживущее состояние одной браузерной сессии:
// Session Store, кэши сущностей с их оркестраторами и резолвер меню.
// Всё состояние живёт в памяти процесса; единственное durable-значение —
// токен в cookie браузера.
package state

import (
	"log/slog"

	"github.com/bigkaa/goconsole/internal/cache"
	"github.com/bigkaa/goconsole/internal/domain/model"
	"github.com/bigkaa/goconsole/internal/gateway"
	"github.com/bigkaa/goconsole/internal/service"
	"github.com/bigkaa/goconsole/internal/session"
)

// State — состояние одной сессии консоли.
type State struct {
	Session *session.Store
	Auth    *gateway.AuthClient

	DataAccesses *service.EntityService[model.DataAccess]
	Roles        *service.EntityService[model.Role]
	JobTitles    *service.EntityService[model.JobTitle]
	Menu         *service.MenuService
}

// Factory создаёт State с общими для всех сессий параметрами backend'а.
type Factory struct {
	apiURL     string
	caCertPath string
	logger     *slog.Logger
}

// NewFactory создаёт фабрику состояний сессий.
func NewFactory(apiURL, caCertPath string, logger *slog.Logger) *Factory {
	return &Factory{
		apiURL:     apiURL,
		caCertPath: caCertPath,
		logger:     logger,
	}
}

// New собирает состояние сессии поверх хранилища токена.
// Gateway-клиент читает bearer-токен из Session Store, поэтому после
// logout запросы уходят без заголовка Authorization. Сбросы кэшей
// подписываются на fan-out Session Store: logout очищает все кэши
// сущностей и кэш меню одним действием.
func (f *Factory) New(storage session.Storage) (*State, error) {
	sess := session.New(storage, f.logger)

	client, err := gateway.New(f.apiURL, f.caCertPath, sess.Token, f.logger)
	if err != nil {
		return nil, err
	}

	st := &State{
		Session:      sess,
		Auth:         gateway.NewAuthClient(client),
		DataAccesses: service.NewDataAccessService(client, cache.New[model.DataAccess](), f.logger),
		Roles:        service.NewRoleService(client, cache.New[model.Role](), f.logger),
		JobTitles:    service.NewJobTitleService(client, cache.New[model.JobTitle](), f.logger),
	}
	st.Menu = service.NewMenuService(st.Auth, f.logger)

	sess.OnReset(st.DataAccesses.Cache().Reset)
	sess.OnReset(st.Roles.Cache().Reset)
	sess.OnReset(st.JobTitles.Cache().Reset)
	sess.OnReset(st.Menu.Reset)

	if err := sess.Initialize(); err != nil {
		return nil, err
	}
	return st, nil
}
