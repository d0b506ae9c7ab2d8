package model

// Role — роль пользователя (справочная сущность).
type Role struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Remark string `json:"remark,omitempty"`
}

// EntityID возвращает идентификатор записи для Entity Cache.
func (r Role) EntityID() int64 {
	return r.ID
}
