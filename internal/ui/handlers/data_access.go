// data_access.go — справочник уровней доступа к данным.
package handlers

import (
	"log/slog"
	"net/url"

	"github.com/bigkaa/goconsole/internal/domain/model"
	"github.com/bigkaa/goconsole/internal/service"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// NewDataAccessHandler создаёт CRUD-обработчики справочника
// уровней доступа.
func NewDataAccessHandler(menuApplication string, logger *slog.Logger) *EntityHandler[model.DataAccess] {
	return NewEntityHandler(EntityDescriptor[model.DataAccess]{
		TitleKey: "entity.data_access.title",
		BasePath: "/admin/dataAccesses",
		Columns: []pages.Column{
			{TitleKey: "table.name"},
			{TitleKey: "table.level"},
		},
		Service: func(st *state.State) *service.EntityService[model.DataAccess] {
			return st.DataAccesses
		},
		ToCells: func(d model.DataAccess) []string {
			return []string{d.Name, d.Level}
		},
		ToFields: func(d model.DataAccess) []pages.Field {
			return []pages.Field{
				{Name: "name", LabelKey: "table.name", Value: d.Name},
				{Name: "level", LabelKey: "table.level", Value: d.Level},
			}
		},
		FromForm: func(form url.Values) model.DataAccess {
			return model.DataAccess{
				Name:  form.Get("name"),
				Level: form.Get("level"),
			}
		},
	}, menuApplication, logger)
}
