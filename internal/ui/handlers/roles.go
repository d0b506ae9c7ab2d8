// roles.go — справочник ролей.
package handlers

import (
	"log/slog"
	"net/url"

	"github.com/bigkaa/goconsole/internal/domain/model"
	"github.com/bigkaa/goconsole/internal/service"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// NewRoleHandler создаёт CRUD-обработчики справочника ролей.
func NewRoleHandler(menuApplication string, logger *slog.Logger) *EntityHandler[model.Role] {
	return NewEntityHandler(EntityDescriptor[model.Role]{
		TitleKey: "entity.role.title",
		BasePath: "/admin/roles",
		Columns: []pages.Column{
			{TitleKey: "table.name"},
			{TitleKey: "table.remark"},
		},
		Service: func(st *state.State) *service.EntityService[model.Role] {
			return st.Roles
		},
		ToCells: func(role model.Role) []string {
			return []string{role.Name, role.Remark}
		},
		ToFields: func(role model.Role) []pages.Field {
			return []pages.Field{
				{Name: "name", LabelKey: "table.name", Value: role.Name},
				{Name: "remark", LabelKey: "table.remark", Value: role.Remark},
			}
		},
		FromForm: func(form url.Values) model.Role {
			return model.Role{
				Name:   form.Get("name"),
				Remark: form.Get("remark"),
			}
		},
	}, menuApplication, logger)
}
