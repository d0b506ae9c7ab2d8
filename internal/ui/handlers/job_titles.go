// job_titles.go — справочник должностей.
package handlers

import (
	"log/slog"
	"net/url"

	"github.com/bigkaa/goconsole/internal/domain/model"
	"github.com/bigkaa/goconsole/internal/service"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// NewJobTitleHandler создаёт CRUD-обработчики справочника должностей.
func NewJobTitleHandler(menuApplication string, logger *slog.Logger) *EntityHandler[model.JobTitle] {
	return NewEntityHandler(EntityDescriptor[model.JobTitle]{
		TitleKey: "entity.job_title.title",
		BasePath: "/admin/jobTitles",
		Columns: []pages.Column{
			{TitleKey: "table.name"},
		},
		Service: func(st *state.State) *service.EntityService[model.JobTitle] {
			return st.JobTitles
		},
		ToCells: func(jt model.JobTitle) []string {
			return []string{jt.Name}
		},
		ToFields: func(jt model.JobTitle) []pages.Field {
			return []pages.Field{
				{Name: "name", LabelKey: "table.name", Value: jt.Name},
			}
		},
		FromForm: func(form url.Values) model.JobTitle {
			return model.JobTitle{
				Name: form.Get("name"),
			}
		},
	}, menuApplication, logger)
}
