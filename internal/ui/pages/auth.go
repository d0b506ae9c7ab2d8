// auth.go — страницы входа, регистрации и восстановления пароля.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/bigkaa/goconsole/internal/ui/i18n"
)

// LoginData — данные страницы входа.
type LoginData struct {
	// Username — введённое имя (возвращается в форму при ошибке).
	Username string
	// Alert — сообщение об ошибке входа.
	Alert *Alert
	// SSOEnabled — показывать ли кнопку входа через SSO.
	SSOEnabled bool
}

// Login возвращает страницу входа.
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, `<h1>%s</h1>`, esc(i18n.T(ctx, "login.title"))); err != nil {
			return err
		}
		if err := renderAlert(w, data.Alert); err != nil {
			return err
		}
		if err := writef(w, `<form method="post" action="/admin/login">`+
			`<div class="form-group"><label for="username">%s</label>`+
			`<input type="text" id="username" name="username" value="%s" required autofocus></div>`+
			`<div class="form-group"><label for="password">%s</label>`+
			`<input type="password" id="password" name="password" required></div>`+
			`<button type="submit" class="btn btn-primary">%s</button>`+
			`</form>`,
			esc(i18n.T(ctx, "login.username")), esc(data.Username),
			esc(i18n.T(ctx, "login.password")),
			esc(i18n.T(ctx, "login.submit"))); err != nil {
			return err
		}
		if data.SSOEnabled {
			if err := writef(w, `<p><a href="/admin/sso">%s</a></p>`, esc(i18n.T(ctx, "login.sso"))); err != nil {
				return err
			}
		}
		return writef(w, `<p><a href="/admin/register">%s</a> · <a href="/admin/forgot-password">%s</a></p>`,
			esc(i18n.T(ctx, "login.register_link")), esc(i18n.T(ctx, "login.forgot_link")))
	})
	return authLayoutT("login.title", body)
}

// RegisterData — данные страницы регистрации.
type RegisterData struct {
	Username string
	Email    string
	Alert    *Alert
}

// Register возвращает страницу регистрации.
func Register(data RegisterData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, `<h1>%s</h1>`, esc(i18n.T(ctx, "register.title"))); err != nil {
			return err
		}
		if err := renderAlert(w, data.Alert); err != nil {
			return err
		}
		return writef(w, `<form method="post" action="/admin/register">`+
			`<div class="form-group"><label for="username">%s</label>`+
			`<input type="text" id="username" name="username" value="%s" required autofocus></div>`+
			`<div class="form-group"><label for="email">%s</label>`+
			`<input type="email" id="email" name="email" value="%s" required></div>`+
			`<div class="form-group"><label for="password">%s</label>`+
			`<input type="password" id="password" name="password" required></div>`+
			`<button type="submit" class="btn btn-primary">%s</button>`+
			`</form>`+
			`<p><a href="/admin/login">%s</a></p>`,
			esc(i18n.T(ctx, "register.username")), esc(data.Username),
			esc(i18n.T(ctx, "register.email")), esc(data.Email),
			esc(i18n.T(ctx, "register.password")),
			esc(i18n.T(ctx, "register.submit")),
			esc(i18n.T(ctx, "register.login_link")))
	})
	return authLayoutT("register.title", body)
}

// ForgotData — данные страницы восстановления пароля.
type ForgotData struct {
	Alert *Alert
}

// Forgot возвращает страницу восстановления пароля.
func Forgot(data ForgotData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, `<h1>%s</h1>`, esc(i18n.T(ctx, "forgot.title"))); err != nil {
			return err
		}
		if err := renderAlert(w, data.Alert); err != nil {
			return err
		}
		return writef(w, `<form method="post" action="/admin/forgot-password">`+
			`<div class="form-group"><label for="email">%s</label>`+
			`<input type="email" id="email" name="email" required autofocus></div>`+
			`<button type="submit" class="btn btn-primary">%s</button>`+
			`</form>`+
			`<p><a href="/admin/login">%s</a></p>`,
			esc(i18n.T(ctx, "forgot.email")),
			esc(i18n.T(ctx, "forgot.submit")),
			esc(i18n.T(ctx, "forgot.login_link")))
	})
	return authLayoutT("forgot.title", body)
}

// authLayoutT оборачивает страницу аутентификации с переводом заголовка.
func authLayoutT(titleKey string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return authLayout(i18n.T(ctx, titleKey), body).Render(ctx, w)
	})
}
