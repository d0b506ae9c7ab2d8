package rbac

import "testing"

// TestAllowed проверяет соответствие действий флагам прав.
func TestAllowed(t *testing.T) {
	flags := PermissionFlags{Create: true, Update: false, Delete: true, Editable: true}

	if !Allowed(flags, ActionCreate) {
		t.Error("create должен быть разрешён")
	}
	if Allowed(flags, ActionUpdate) {
		t.Error("update должен быть запрещён")
	}
	if !Allowed(flags, ActionDelete) {
		t.Error("delete должен быть разрешён")
	}
}

// TestAllowed_ZeroValue проверяет, что нулевые флаги запрещают всё.
func TestAllowed_ZeroValue(t *testing.T) {
	var flags PermissionFlags

	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		if Allowed(flags, action) {
			t.Errorf("действие %s должно быть запрещено нулевыми флагами", action)
		}
	}
}

// TestAllowed_UnknownAction проверяет, что неизвестное действие запрещено
// даже при полностью разрешающих флагах.
func TestAllowed_UnknownAction(t *testing.T) {
	flags := PermissionFlags{Create: true, Update: true, Delete: true, Editable: true}

	if Allowed(flags, Action("export")) {
		t.Error("неизвестное действие должно быть запрещено")
	}
}
