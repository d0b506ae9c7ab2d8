// resource.go — типизированный CRUD-доступ к одному типу справочной
// сущности backend'а. Шаблон REST-путей одинаков для всех сущностей:
//
//	GET    {path}       — список + флаги прав
//	GET    {path}/{id}  — одна запись + флаги прав
//	POST   {path}       — создание, ответ {<item_key>: ..., message: ...}
//	PUT    {path}/{id}  — частичное обновление, ответ аналогичен POST
//	DELETE {path}/{id}  — удаление, ответ {message: ...}
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bigkaa/goconsole/internal/domain/rbac"
)

// Resource — CRUD-операции одного типа сущности.
// Каждый метод — ровно один HTTP-запрос; кэш не трогается: применение
// ответов к Entity Cache — обязанность CRUD-оркестратора.
type Resource[T any] struct {
	client *Client
	// path — REST-путь коллекции, например "/dataAccesses".
	path string
	// itemKey — имя поля с записью в ответах create/update,
	// например "data_access".
	itemKey string
}

// NewResource создаёт типизированный доступ к коллекции backend'а.
func NewResource[T any](client *Client, path, itemKey string) *Resource[T] {
	return &Resource[T]{
		client:  client,
		path:    path,
		itemKey: itemKey,
	}
}

// listResponse — ответ GET {path}.
type listResponse[T any] struct {
	Result   []T                  `json:"result"`
	Editable rbac.PermissionFlags `json:"editable"`
}

// itemResponse — ответ GET {path}/{id}.
type itemResponse[T any] struct {
	Result   T                    `json:"result"`
	Editable rbac.PermissionFlags `json:"editable"`
}

// List запрашивает полный список записей и флаги прав текущей роли.
func (r *Resource[T]) List(ctx context.Context) ([]T, rbac.PermissionFlags, error) {
	var resp listResponse[T]
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &resp); err != nil {
		return nil, rbac.PermissionFlags{}, err
	}
	return resp.Result, resp.Editable, nil
}

// Get запрашивает одну запись по id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, rbac.PermissionFlags, error) {
	var resp itemResponse[T]
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil, &resp); err != nil {
		var zero T
		return zero, rbac.PermissionFlags{}, err
	}
	return resp.Result, resp.Editable, nil
}

// Create создаёт запись. Возвращает созданную запись (с присвоенным
// backend'ом id) и человекочитаемое сообщение.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, string, error) {
	return r.mutate(ctx, http.MethodPost, r.path, item)
}

// Update частично обновляет запись. Возвращает обновлённую запись
// и человекочитаемое сообщение.
func (r *Resource[T]) Update(ctx context.Context, id int64, item T) (T, string, error) {
	return r.mutate(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), item)
}

// Delete удаляет запись. Возвращает человекочитаемое сообщение.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := r.client.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// mutate выполняет POST/PUT и разбирает ответ вида
// {<item_key>: {...}, "message": "..."}.
func (r *Resource[T]) mutate(ctx context.Context, method, path string, item T) (T, string, error) {
	var zero T

	raw := map[string]json.RawMessage{}
	if err := r.client.do(ctx, method, path, item, &raw); err != nil {
		return zero, "", err
	}

	var message string
	if data, ok := raw["message"]; ok {
		if err := json.Unmarshal(data, &message); err != nil {
			return zero, "", fmt.Errorf("декодирование message из ответа %s %s: %w", method, path, err)
		}
	}

	data, ok := raw[r.itemKey]
	if !ok {
		return zero, "", fmt.Errorf("ответ %s %s не содержит поля %q", method, path, r.itemKey)
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return zero, "", fmt.Errorf("декодирование %q из ответа %s %s: %w", r.itemKey, method, path, err)
	}

	return result, message, nil
}
