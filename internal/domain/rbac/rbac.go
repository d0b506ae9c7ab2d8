// Пакет rbac — проверка прав на действия в UI консоли.
// Права не вычисляются локально: backend присылает набор boolean-флагов
// вместе с каждым ответом list/get, флаги заменяются целиком при каждом
// ответе. Пакет лишь отвечает на вопрос «показывать ли кнопку».
package rbac

// Action — действие над справочной сущностью, которое может быть
// разрешено или запрещено для текущей роли.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// PermissionFlags — флаги прав, вычисленные backend'ом для текущей роли
// и типа сущности. Приходят в поле "editable" ответов list/get.
// Нулевое значение — все действия запрещены.
type PermissionFlags struct {
	// Create — разрешено создание новых записей.
	Create bool `json:"create"`
	// Update — разрешено редактирование существующих записей.
	Update bool `json:"update"`
	// Delete — разрешено удаление записей.
	Delete bool `json:"delete"`
	// Editable — обобщённый флаг «раздел доступен для изменений».
	Editable bool `json:"editable"`
}

// Allowed возвращает true, если действие разрешено текущими флагами.
// Чистая функция, без собственного состояния и кэширования: флаги
// всегда берутся свежими из Entity Cache.
func Allowed(flags PermissionFlags, action Action) bool {
	switch action {
	case ActionCreate:
		return flags.Create
	case ActionUpdate:
		return flags.Update
	case ActionDelete:
		return flags.Delete
	default:
		return false
	}
}
