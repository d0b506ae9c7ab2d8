// Пакет model — доменные модели консоли.
// Все справочные сущности создаются и изменяются только backend'ом;
// консоль хранит их копии в Entity Cache.
package model

// DataAccess — уровень доступа к данным (справочная сущность).
// ID присваивается backend'ом; у ещё не созданной записи ID == 0.
type DataAccess struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Level string `json:"level,omitempty"`
}

// EntityID возвращает идентификатор записи для Entity Cache.
func (d DataAccess) EntityID() int64 {
	return d.ID
}
