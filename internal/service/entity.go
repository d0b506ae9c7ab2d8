// Пакет service — сервисный слой консоли.
// entity.go — CRUD-оркестратор: последовательность «локальная валидация →
// один вызов Entity Gateway → одна мутация Entity Cache при успехе».
// При любой ошибке gateway кэш остаётся нетронутым — частичного
// применения не бывает.
package service

import (
	"context"
	"log/slog"

	"github.com/bigkaa/goconsole/internal/cache"
	"github.com/bigkaa/goconsole/internal/gateway"
)

// EntityService — оркестратор CRUD-операций одного типа сущности.
type EntityService[T cache.Item] struct {
	resource *gateway.Resource[T]
	cache    *cache.Cache[T]
	// validate проверяет обязательные поля формы в детерминированном
	// порядке и возвращает первую ошибку или nil.
	validate func(T) *ValidationError
	logger   *slog.Logger
}

// NewEntityService создаёт оркестратор поверх gateway-ресурса и кэша.
func NewEntityService[T cache.Item](
	resource *gateway.Resource[T],
	c *cache.Cache[T],
	validate func(T) *ValidationError,
	component string,
	logger *slog.Logger,
) *EntityService[T] {
	return &EntityService[T]{
		resource: resource,
		cache:    c,
		validate: validate,
		logger:   logger.With(slog.String("component", component)),
	}
}

// Cache возвращает кэш сущности для чтения состояния UI-слоем.
func (s *EntityService[T]) Cache() *cache.Cache[T] {
	return s.cache
}

// Load загружает полный список с backend'а и замещает им кэш
// вместе с флагами прав.
func (s *EntityService[T]) Load(ctx context.Context) error {
	items, flags, err := s.resource.List(ctx)
	if err != nil {
		return err
	}
	s.cache.ReplaceAll(items, flags)
	return nil
}

// Fetch загружает одну запись и делает её «текущей» в кэше.
func (s *EntityService[T]) Fetch(ctx context.Context, id int64) (T, error) {
	item, flags, err := s.resource.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	s.cache.SetCurrent(item, flags)
	return item, nil
}

// SubmitCreate создаёт запись: валидация, один POST, при успехе —
// добавление подтверждённой сервером записи в кэш. Возвращает
// человекочитаемое сообщение backend'а.
func (s *EntityService[T]) SubmitCreate(ctx context.Context, item T) (string, error) {
	if verr := s.validate(item); verr != nil {
		return "", verr
	}

	created, message, err := s.resource.Create(ctx, item)
	if err != nil {
		return "", err
	}

	s.cache.Append(created)
	s.logger.Debug("Запись создана", slog.Int64("id", created.EntityID()))
	return message, nil
}

// SubmitUpdate обновляет запись: валидация, один PUT, при успехе —
// замена записи в кэше по id. Отсутствие id в кэше — тихий no-op на
// стороне кэша; сообщение backend'а возвращается в любом случае.
func (s *EntityService[T]) SubmitUpdate(ctx context.Context, id int64, item T) (string, error) {
	if verr := s.validate(item); verr != nil {
		return "", verr
	}

	updated, message, err := s.resource.Update(ctx, id, item)
	if err != nil {
		return "", err
	}

	s.cache.ReplaceByID(updated)
	s.logger.Debug("Запись обновлена", slog.Int64("id", id))
	return message, nil
}

// SubmitDelete удаляет запись: один DELETE, при успехе — удаление из
// кэша по id.
func (s *EntityService[T]) SubmitDelete(ctx context.Context, id int64) (string, error) {
	message, err := s.resource.Delete(ctx, id)
	if err != nil {
		return "", err
	}

	s.cache.RemoveByID(id)
	s.logger.Debug("Запись удалена", slog.Int64("id", id))
	return message, nil
}
