package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bigkaa/goconsole/internal/gateway"
)

// newMenuService собирает резолвер меню поверх mock backend'а.
func newMenuService(t *testing.T, mb *mockBackend) *MenuService {
	t.Helper()
	client, err := gateway.New(mb.server.URL, "", func() string { return "tok" }, testLogger())
	if err != nil {
		t.Fatalf("ошибка создания клиента: %v", err)
	}
	return NewMenuService(gateway.NewAuthClient(client), testLogger())
}

// TestMenuGroups_FetchOnce: конфигурация меню запрашивается один раз,
// повторные обращения в рамках сессии отдают кэш.
func TestMenuGroups_FetchOnce(t *testing.T) {
	mb := newMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{
					"application_name": "System",
					"data": []map[string]string{
						{"area_name": "Users"},
						{"area_name": "Teams"},
					},
				},
			},
		})
	})
	svc := newMenuService(t, mb)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		groups, err := svc.Groups(ctx, 2)
		if err != nil {
			t.Fatalf("ошибка Groups: %v", err)
		}
		if len(groups) != 1 || groups[0].ApplicationName != "System" {
			t.Fatalf("неожиданная конфигурация меню: %v", groups)
		}
	}
	if got := mb.calls.Load(); got != 1 {
		t.Errorf("ожидался один запрос конфигурации меню, выполнено %d", got)
	}
}

// TestMenuAreasFor проверяет фильтрацию разделов по приложению.
func TestMenuAreasFor(t *testing.T) {
	mb := newMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{
					"application_name": "System",
					"data":             []map[string]string{{"area_name": "Users"}, {"area_name": "Teams"}},
				},
				{
					"application_name": "Billing",
					"data":             []map[string]string{{"area_name": "Invoices"}},
				},
			},
		})
	})
	svc := newMenuService(t, mb)
	ctx := context.Background()

	areas, err := svc.AreasFor(ctx, 2, "System")
	if err != nil {
		t.Fatalf("ошибка AreasFor: %v", err)
	}
	if len(areas) != 2 || areas[0] != "Users" || areas[1] != "Teams" {
		t.Errorf("ожидались [Users Teams], получено %v", areas)
	}

	// Неизвестное приложение — пустой, но не nil список
	areas, err = svc.AreasFor(ctx, 2, "Other")
	if err != nil {
		t.Fatalf("ошибка AreasFor: %v", err)
	}
	if areas == nil || len(areas) != 0 {
		t.Errorf("для неизвестного приложения ожидался пустой список, получено %v", areas)
	}
}

// TestMenuReset: после сброса следующий запрос снова идёт к backend'у.
func TestMenuReset(t *testing.T) {
	mb := newMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{}})
	})
	svc := newMenuService(t, mb)
	ctx := context.Background()

	if _, err := svc.Groups(ctx, 2); err != nil {
		t.Fatalf("ошибка Groups: %v", err)
	}
	svc.Reset()
	if _, err := svc.Groups(ctx, 2); err != nil {
		t.Fatalf("ошибка Groups после сброса: %v", err)
	}
	if got := mb.calls.Load(); got != 2 {
		t.Errorf("после сброса ожидался повторный запрос, всего %d", got)
	}
}

// TestMenuGroups_RoleChange: смена роли инвалидирует кэш меню.
func TestMenuGroups_RoleChange(t *testing.T) {
	mb := newMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{}})
	})
	svc := newMenuService(t, mb)
	ctx := context.Background()

	if _, err := svc.Groups(ctx, 2); err != nil {
		t.Fatalf("ошибка Groups: %v", err)
	}
	if _, err := svc.Groups(ctx, 3); err != nil {
		t.Fatalf("ошибка Groups для новой роли: %v", err)
	}
	if got := mb.calls.Load(); got != 2 {
		t.Errorf("смена роли должна порождать новый запрос, всего %d", got)
	}
}
