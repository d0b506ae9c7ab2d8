// Пакет pages — серверный рендеринг страниц консоли.
// Страницы собираются как templ.Component и рендерятся обработчиками
// через pages.X(data).Render(ctx, w).
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/bigkaa/goconsole/internal/ui/i18n"
)

// Alert — flash-сообщение страницы.
type Alert struct {
	// Kind — success или error.
	Kind string
	// Message — готовый к показу текст (сообщение backend'а или перевод).
	Message string
}

// NavItem — пункт бокового меню.
type NavItem struct {
	Label string
	Href  string
}

// LayoutData — общие данные каркаса страницы.
type LayoutData struct {
	// Title — заголовок вкладки браузера.
	Title string
	// Username — имя текущего пользователя.
	Username string
	// Nav — пункты бокового меню (разделы, разрешённые ролью).
	Nav []NavItem
	// ActivePath — путь текущей страницы для подсветки пункта меню.
	ActivePath string
}

// esc экранирует строку для вставки в HTML.
func esc(s string) string {
	return templ.EscapeString(s)
}

// writef пишет форматированную строку, прерывая рендеринг при ошибке записи.
func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// renderAlert вставляет flash-сообщение, если оно задано.
func renderAlert(w io.Writer, alert *Alert) error {
	if alert == nil || alert.Message == "" {
		return nil
	}
	kind := "alert-success"
	if alert.Kind == "error" {
		kind = "alert-error"
	}
	return writef(w, `<div class="alert %s" data-autohide>%s</div>`, kind, esc(alert.Message))
}

// layout оборачивает содержимое страницы в общий каркас с боковым меню.
func layout(data LayoutData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pageHead(w, ctx, data.Title); err != nil {
			return err
		}
		if err := writef(w, `<body><div class="layout"><aside class="sidebar"><div class="brand">%s</div><nav>`,
			esc(i18n.T(ctx, "app.title"))); err != nil {
			return err
		}

		if err := navLink(w, i18n.T(ctx, "nav.dashboard"), "/admin", data.ActivePath == "/admin"); err != nil {
			return err
		}
		for _, item := range data.Nav {
			if err := navLink(w, item.Label, item.Href, item.Href == data.ActivePath); err != nil {
				return err
			}
		}

		if err := writef(w, `</nav></aside><main class="content"><div class="topbar"><span>%s</span>`+
			`<form method="post" action="/admin/logout"><button type="submit" class="btn btn-link">%s</button></form></div>`,
			esc(data.Username), esc(i18n.T(ctx, "nav.logout"))); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		return writef(w, `</main></div></body></html>`)
	})
}

// authLayout оборачивает страницы аутентификации (без бокового меню).
func authLayout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pageHead(w, ctx, title); err != nil {
			return err
		}
		if err := writef(w, `<body><div class="card auth-card">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		return writef(w, `</div></body></html>`)
	})
}

// pageHead пишет начало HTML-документа с подключением статики.
func pageHead(w io.Writer, ctx context.Context, title string) error {
	if title == "" {
		title = i18n.T(ctx, "app.title")
	}
	return writef(w, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`+
		`<meta name="viewport" content="width=device-width, initial-scale=1">`+
		`<title>%s</title>`+
		`<link rel="stylesheet" href="/static/css/console.css">`+
		`<script src="/static/js/console.js" defer></script>`+
		`</head>`, esc(i18n.LangFromContext(ctx)), esc(title))
}

// navLink пишет один пункт бокового меню.
func navLink(w io.Writer, label, href string, active bool) error {
	class := ""
	if active {
		class = ` class="active"`
	}
	return writef(w, `<a href="%s"%s>%s</a>`, esc(href), class, esc(label))
}
