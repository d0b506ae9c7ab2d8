// storage.go — долговременное хранилище токена сессии.
// Хранится ровно одно значение — bearer-токен; web-слой реализует
// интерфейс поверх зашифрованного cookie, тесты — поверх памяти.
package session

import "sync"

// Storage — долговременное хранилище единственного значения (токена).
// Пустая строка означает «токен отсутствует».
type Storage interface {
	// Load читает сохранённый токен. Отсутствие токена — ("", nil).
	Load() (string, error)
	// Save сохраняет токен, замещая предыдущий.
	Save(token string) error
	// Clear удаляет сохранённый токен.
	Clear() error
}

// MemoryStorage — хранилище токена в памяти.
// Используется в тестах и как затравка при восстановлении сессии,
// когда токен уже извлечён из cookie web-слоем.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStorage создаёт хранилище с начальным значением токена.
func NewMemoryStorage(token string) *MemoryStorage {
	return &MemoryStorage{token: token}
}

// Load возвращает сохранённый токен.
func (m *MemoryStorage) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Save сохраняет токен.
func (m *MemoryStorage) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear удаляет токен.
func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
