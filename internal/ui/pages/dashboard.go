// dashboard.go — главная страница консоли.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/bigkaa/goconsole/internal/ui/i18n"
)

// DashboardData — данные страницы Dashboard.
type DashboardData struct {
	Layout LayoutData
}

// Dashboard возвращает главную страницу консоли.
func Dashboard(data DashboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, `<h1>%s</h1>`, esc(i18n.T(ctx, "dashboard.title"))); err != nil {
			return err
		}
		return writef(w, `<div class="card"><p>%s</p></div>`,
			esc(i18n.Tf(ctx, "dashboard.welcome", data.Layout.Username)))
	})
	return layout(data.Layout, body)
}
