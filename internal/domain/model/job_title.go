package model

// JobTitle — должность (справочная сущность).
type JobTitle struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// EntityID возвращает идентификатор записи для Entity Cache.
func (j JobTitle) EntityID() int64 {
	return j.ID
}
