// entity.go — страницы списка и формы справочных сущностей.
// Таблица и форма описываются данными (колонки, поля), поэтому один
// набор компонентов обслуживает все справочники. Кнопки create/edit/
// delete отображаются только при соответствующих флагах прав.
package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bigkaa/goconsole/internal/domain/rbac"
	"github.com/bigkaa/goconsole/internal/ui/i18n"
)

// Column — колонка таблицы: ключ перевода заголовка.
type Column struct {
	TitleKey string
}

// Row — строка таблицы: id записи и значения ячеек в порядке колонок.
type Row struct {
	ID    int64
	Cells []string
}

// EntityListData — данные страницы списка сущности.
type EntityListData struct {
	Layout LayoutData
	// TitleKey — ключ перевода заголовка страницы.
	TitleKey string
	// BasePath — базовый путь CRUD-маршрутов, например /admin/dataAccesses.
	BasePath string
	Columns  []Column
	Rows     []Row
	// Flags — флаги прав, управляющие видимостью кнопок.
	Flags rbac.PermissionFlags
	Alert *Alert
}

// EntityList возвращает страницу списка сущности.
func EntityList(data EntityListData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, `<h1>%s</h1>`, esc(i18n.T(ctx, data.TitleKey))); err != nil {
			return err
		}
		if err := renderAlert(w, data.Alert); err != nil {
			return err
		}

		if rbac.Allowed(data.Flags, rbac.ActionCreate) {
			if err := writef(w, `<p><a class="btn btn-primary" href="%s/new">%s</a></p>`,
				esc(data.BasePath), esc(i18n.T(ctx, "action.create"))); err != nil {
				return err
			}
		}

		if len(data.Rows) == 0 {
			return writef(w, `<div class="card"><p>%s</p></div>`, esc(i18n.T(ctx, "table.empty")))
		}

		if err := writef(w, `<table class="grid"><thead><tr><th>%s</th>`, esc(i18n.T(ctx, "table.id"))); err != nil {
			return err
		}
		for _, col := range data.Columns {
			if err := writef(w, `<th>%s</th>`, esc(i18n.T(ctx, col.TitleKey))); err != nil {
				return err
			}
		}
		if err := writef(w, `<th>%s</th></tr></thead><tbody>`, esc(i18n.T(ctx, "table.actions"))); err != nil {
			return err
		}

		for _, row := range data.Rows {
			if err := renderRow(ctx, w, data, row); err != nil {
				return err
			}
		}

		return writef(w, `</tbody></table>`)
	})
	return layout(data.Layout, body)
}

// renderRow пишет одну строку таблицы с кнопками действий.
func renderRow(ctx context.Context, w io.Writer, data EntityListData, row Row) error {
	id := strconv.FormatInt(row.ID, 10)
	if err := writef(w, `<tr><td>%s</td>`, id); err != nil {
		return err
	}
	for _, cell := range row.Cells {
		if err := writef(w, `<td>%s</td>`, esc(cell)); err != nil {
			return err
		}
	}
	if err := writef(w, `<td>`); err != nil {
		return err
	}
	if rbac.Allowed(data.Flags, rbac.ActionUpdate) {
		if err := writef(w, `<a class="btn" href="%s/%s/edit">%s</a> `,
			esc(data.BasePath), id, esc(i18n.T(ctx, "action.edit"))); err != nil {
			return err
		}
	}
	if rbac.Allowed(data.Flags, rbac.ActionDelete) {
		if err := writef(w, `<form method="post" action="%s/%s/delete" style="display:inline" data-confirm="%s">`+
			`<button type="submit" class="btn btn-danger">%s</button></form>`,
			esc(data.BasePath), id,
			esc(i18n.T(ctx, "confirm.delete")),
			esc(i18n.T(ctx, "action.delete"))); err != nil {
			return err
		}
	}
	return writef(w, `</td></tr>`)
}

// Field — поле формы сущности.
type Field struct {
	// Name — имя поля формы (и ключ формы при submit).
	Name string
	// LabelKey — ключ перевода подписи.
	LabelKey string
	// Value — текущее значение.
	Value string
}

// EntityFormData — данные формы создания или редактирования.
type EntityFormData struct {
	Layout LayoutData
	// TitleKey — ключ перевода заголовка справочника.
	TitleKey string
	// BasePath — базовый путь CRUD-маршрутов.
	BasePath string
	// ID — id записи; 0 для формы создания.
	ID     int64
	Fields []Field
	Alert  *Alert
}

// EntityForm возвращает страницу формы сущности.
func EntityForm(data EntityFormData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		formTitle := "form.create_title"
		action := data.BasePath
		if data.ID != 0 {
			formTitle = "form.edit_title"
			action = data.BasePath + "/" + strconv.FormatInt(data.ID, 10)
		}

		if err := writef(w, `<h1>%s — %s</h1>`,
			esc(i18n.T(ctx, data.TitleKey)), esc(i18n.T(ctx, formTitle))); err != nil {
			return err
		}
		if err := renderAlert(w, data.Alert); err != nil {
			return err
		}

		if err := writef(w, `<div class="card"><form method="post" action="%s">`, esc(action)); err != nil {
			return err
		}
		for _, f := range data.Fields {
			if err := writef(w, `<div class="form-group"><label for="%s">%s</label>`+
				`<input type="text" id="%s" name="%s" value="%s"></div>`,
				esc(f.Name), esc(i18n.T(ctx, f.LabelKey)),
				esc(f.Name), esc(f.Name), esc(f.Value)); err != nil {
				return err
			}
		}
		return writef(w, `<button type="submit" class="btn btn-primary">%s</button> `+
			`<a class="btn" href="%s">%s</a></form></div>`,
			esc(i18n.T(ctx, "action.save")),
			esc(data.BasePath),
			esc(i18n.T(ctx, "action.cancel")))
	})
	return layout(data.Layout, body)
}
