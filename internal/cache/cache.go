// Пакет cache — нормализованный in-memory кэш справочной сущности.
// Кэш — зеркало данных backend'а: он изменяется только как прямой
// результат ответа Entity Gateway (через CRUD-оркестратор) или сброса
// при logout. Никаких спекулятивных локальных правок: незавершённые
// формы живут в состоянии UI и попадают сюда лишь после подтверждения
// сервером.
//
// В исходной модели мутации сериализовались циклом событий UI; здесь
// ту же роль играет мьютекс. Политика поздних ответов — last-response-wins:
// ответ list(), пришедший после более свежего create(), перезапишет кэш,
// это принятая семантика. Ответ, пришедший после ухода со страницы,
// безопасно применяется или превращается в no-op.
package cache

import (
	"sync"

	"github.com/bigkaa/goconsole/internal/domain/rbac"
)

// Item — справочная сущность, пригодная для хранения в кэше.
type Item interface {
	// EntityID возвращает идентификатор, присвоенный backend'ом.
	EntityID() int64
}

// Cache — кэш одного типа сущности: упорядоченный список, «текущая»
// запись и флаги прав, пришедшие с последним ответом list/get.
type Cache[T Item] struct {
	mu      sync.Mutex
	items   []T
	current *T
	flags   rbac.PermissionFlags
}

// New создаёт пустой кэш.
func New[T Item]() *Cache[T] {
	return &Cache[T]{}
}

// ReplaceAll замещает весь список и флаги прав ответом list().
// Флаги заменяются целиком, никогда не сливаются с предыдущими.
// Дубликаты id во входных данных отбрасываются (остаётся первое
// вхождение) — инвариант уникальности id держится при любых мутациях.
func (c *Cache[T]) ReplaceAll(items []T, flags rbac.PermissionFlags) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int64]bool, len(items))
	deduped := make([]T, 0, len(items))
	for _, item := range items {
		if seen[item.EntityID()] {
			continue
		}
		seen[item.EntityID()] = true
		deduped = append(deduped, item)
	}

	c.items = deduped
	c.flags = flags
}

// SetCurrent устанавливает «текущую» запись и флаги ответом getById().
func (c *Cache[T]) SetCurrent(item T, flags rbac.PermissionFlags) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &item
	c.flags = flags
}

// Append добавляет запись после успешного create().
// Если запись с таким id уже есть (backend повторил ответ) —
// замещает её на месте, сохраняя уникальность id.
func (c *Cache[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// ReplaceByID замещает запись с совпадающим id после успешного update().
// Если записи нет — тихий no-op, не ошибка: авторитетное состояние
// у сервера, локальный список мог быть уже перезагружен.
func (c *Cache[T]) ReplaceByID(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			return
		}
	}
}

// RemoveByID удаляет запись после успешного delete().
// Отсутствие записи — no-op.
func (c *Cache[T]) RemoveByID(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Reset очищает кэш до исходного состояния: пустой список, нет текущей
// записи, все флаги прав сброшены. Вызывается fan-out'ом при logout.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.current = nil
	c.flags = rbac.PermissionFlags{}
}

// Items возвращает копию списка записей.
func (c *Cache[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Current возвращает «текущую» запись, если она установлена.
func (c *Cache[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		var zero T
		return zero, false
	}
	return *c.current, true
}

// Flags возвращает флаги прав последнего ответа list/get.
func (c *Cache[T]) Flags() rbac.PermissionFlags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

// Len возвращает количество записей в списке.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
