// reference.go — конструкторы оркестраторов справочных сущностей.
// Все справочники живут по одному REST-шаблону backend'а; здесь
// фиксируются пути коллекций, ключи ответов и правила валидации форм.
package service

import (
	"log/slog"

	"github.com/bigkaa/goconsole/internal/cache"
	"github.com/bigkaa/goconsole/internal/domain/model"
	"github.com/bigkaa/goconsole/internal/gateway"
)

// NewDataAccessService создаёт оркестратор уровней доступа к данным.
func NewDataAccessService(client *gateway.Client, c *cache.Cache[model.DataAccess], logger *slog.Logger) *EntityService[model.DataAccess] {
	resource := gateway.NewResource[model.DataAccess](client, "/dataAccesses", "data_access")
	return NewEntityService(resource, c, validateDataAccess, "data_access", logger)
}

// validateDataAccess проверяет обязательные поля формы уровня доступа.
// Порядок фиксирован: сначала name, затем level — сообщается только
// первое незаполненное поле.
func validateDataAccess(d model.DataAccess) *ValidationError {
	if d.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if d.Level == "" {
		return &ValidationError{Field: "level"}
	}
	return nil
}

// NewRoleService создаёт оркестратор ролей.
func NewRoleService(client *gateway.Client, c *cache.Cache[model.Role], logger *slog.Logger) *EntityService[model.Role] {
	resource := gateway.NewResource[model.Role](client, "/roles", "role")
	return NewEntityService(resource, c, validateRole, "role", logger)
}

// validateRole проверяет обязательные поля формы роли.
// Примечание остаётся необязательным.
func validateRole(r model.Role) *ValidationError {
	if r.Name == "" {
		return &ValidationError{Field: "name"}
	}
	return nil
}

// NewJobTitleService создаёт оркестратор должностей.
func NewJobTitleService(client *gateway.Client, c *cache.Cache[model.JobTitle], logger *slog.Logger) *EntityService[model.JobTitle] {
	resource := gateway.NewResource[model.JobTitle](client, "/jobTitles", "job_title")
	return NewEntityService(resource, c, validateJobTitle, "job_title", logger)
}

// validateJobTitle проверяет обязательные поля формы должности.
func validateJobTitle(j model.JobTitle) *ValidationError {
	if j.Name == "" {
		return &ValidationError{Field: "name"}
	}
	return nil
}
