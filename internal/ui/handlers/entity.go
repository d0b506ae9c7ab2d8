// entity.go — универсальный CRUD-обработчик справочных сущностей.
// Каждая сущность описывается дескриптором: заголовок, маршруты,
// колонки таблицы и преобразования форма ↔ модель. Видимость действий
// управляется флагами прав из ответов backend'а; мутации кэша
// происходят только после подтверждения сервера.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goconsole/internal/cache"
	"github.com/bigkaa/goconsole/internal/domain/rbac"
	"github.com/bigkaa/goconsole/internal/gateway"
	"github.com/bigkaa/goconsole/internal/service"
	"github.com/bigkaa/goconsole/internal/state"
	uimiddleware "github.com/bigkaa/goconsole/internal/ui/middleware"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// EntityDescriptor описывает одну справочную сущность для CRUD UI.
type EntityDescriptor[T cache.Item] struct {
	// TitleKey — ключ перевода заголовка справочника.
	TitleKey string
	// BasePath — базовый путь маршрутов, например /admin/dataAccesses.
	BasePath string
	// Columns — колонки таблицы списка.
	Columns []pages.Column
	// Service выбирает оркестратор сущности из состояния сессии.
	Service func(*state.State) *service.EntityService[T]
	// ToCells возвращает значения ячеек строки в порядке колонок.
	ToCells func(T) []string
	// ToFields возвращает поля формы с текущими значениями.
	ToFields func(T) []pages.Field
	// FromForm собирает модель из значений формы.
	FromForm func(url.Values) T
}

// EntityHandler — CRUD-обработчики одной сущности.
type EntityHandler[T cache.Item] struct {
	desc            EntityDescriptor[T]
	menuApplication string
	logger          *slog.Logger
}

// NewEntityHandler создаёт CRUD-обработчики по дескриптору.
func NewEntityHandler[T cache.Item](desc EntityDescriptor[T], menuApplication string, logger *slog.Logger) *EntityHandler[T] {
	return &EntityHandler[T]{
		desc:            desc,
		menuApplication: menuApplication,
		logger:          logger.With(slog.String("component", "ui.entity"), slog.String("path", desc.BasePath)),
	}
}

// Register регистрирует CRUD-маршруты сущности на роутере.
func (h *EntityHandler[T]) Register(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/new", h.HandleNewForm)
	r.Get("/{id}/edit", h.HandleEditForm)
	r.Post("/{id}", h.HandleUpdate)
	r.Post("/{id}/delete", h.HandleDelete)
}

// HandleList — GET {base}: загрузка списка с backend'а и таблица.
func (h *EntityHandler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	svc := h.desc.Service(st)

	alert := flashFromQuery(r)
	if err := svc.Load(r.Context()); err != nil {
		h.logger.Warn("Ошибка загрузки списка", slog.String("error", err.Error()))
		alert = &pages.Alert{Kind: "error", Message: gatewayMessage(err)}
	}

	items := svc.Cache().Items()
	rows := make([]pages.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, pages.Row{ID: item.EntityID(), Cells: h.desc.ToCells(item)})
	}

	render(w, r, h.logger, pages.EntityList(pages.EntityListData{
		Layout:   buildLayout(r.Context(), st, h.menuApplication, h.desc.BasePath, h.logger),
		TitleKey: h.desc.TitleKey,
		BasePath: h.desc.BasePath,
		Columns:  h.desc.Columns,
		Rows:     rows,
		Flags:    svc.Cache().Flags(),
		Alert:    alert,
	}))
}

// HandleNewForm — GET {base}/new: форма создания.
func (h *EntityHandler[T]) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	if !rbac.Allowed(h.desc.Service(st).Cache().Flags(), rbac.ActionCreate) {
		http.Redirect(w, r, h.desc.BasePath, http.StatusFound)
		return
	}

	var zero T
	render(w, r, h.logger, pages.EntityForm(pages.EntityFormData{
		Layout:   buildLayout(r.Context(), st, h.menuApplication, h.desc.BasePath, h.logger),
		TitleKey: h.desc.TitleKey,
		BasePath: h.desc.BasePath,
		Fields:   h.desc.ToFields(zero),
		Alert:    flashFromQuery(r),
	}))
}

// HandleCreate — POST {base}: создание записи.
func (h *EntityHandler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	item := h.desc.FromForm(r.PostForm)
	msg, err := h.desc.Service(st).SubmitCreate(r.Context(), item)
	if err != nil {
		h.renderFormError(w, r, st, 0, item, err)
		return
	}

	redirectWithFlash(w, r, h.desc.BasePath, "success", msg)
}

// HandleEditForm — GET {base}/{id}/edit: форма редактирования.
// Запись запрашивается у backend'а и становится «текущей» в кэше.
func (h *EntityHandler[T]) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := h.desc.Service(st).Fetch(r.Context(), id)
	if err != nil {
		redirectWithFlash(w, r, h.desc.BasePath, "error", gatewayMessage(err))
		return
	}

	render(w, r, h.logger, pages.EntityForm(pages.EntityFormData{
		Layout:   buildLayout(r.Context(), st, h.menuApplication, h.desc.BasePath, h.logger),
		TitleKey: h.desc.TitleKey,
		BasePath: h.desc.BasePath,
		ID:       id,
		Fields:   h.desc.ToFields(item),
		Alert:    flashFromQuery(r),
	}))
}

// HandleUpdate — POST {base}/{id}: обновление записи.
func (h *EntityHandler[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	item := h.desc.FromForm(r.PostForm)
	msg, err := h.desc.Service(st).SubmitUpdate(r.Context(), id, item)
	if err != nil {
		h.renderFormError(w, r, st, id, item, err)
		return
	}

	redirectWithFlash(w, r, h.desc.BasePath, "success", msg)
}

// HandleDelete — POST {base}/{id}/delete: удаление записи.
func (h *EntityHandler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	msg, err := h.desc.Service(st).SubmitDelete(r.Context(), id)
	if err != nil {
		redirectWithFlash(w, r, h.desc.BasePath, "error", gatewayMessage(err))
		return
	}

	redirectWithFlash(w, r, h.desc.BasePath, "success", msg)
}

// renderFormError перерисовывает форму с введёнными значениями и
// сообщением об ошибке (валидация или отказ backend'а).
func (h *EntityHandler[T]) renderFormError(w http.ResponseWriter, r *http.Request, st *state.State, id int64, item T, err error) {
	render(w, r, h.logger, pages.EntityForm(pages.EntityFormData{
		Layout:   buildLayout(r.Context(), st, h.menuApplication, h.desc.BasePath, h.logger),
		TitleKey: h.desc.TitleKey,
		BasePath: h.desc.BasePath,
		ID:       id,
		Fields:   h.desc.ToFields(item),
		Alert:    &pages.Alert{Kind: "error", Message: gatewayMessage(err)},
	}))
}

// parseID извлекает числовой id из URL.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// gatewayMessage возвращает человекочитаемое сообщение ошибки:
// текст backend'а, текст валидации или общее описание.
func gatewayMessage(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return err.Error()
}
