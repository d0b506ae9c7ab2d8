package model

// MenuArea — один навигационный раздел внутри приложения.
type MenuArea struct {
	AreaName string `json:"area_name"`
}

// MenuGroup — группа разделов меню одного приложения.
// Backend возвращает список групп, отфильтрованный по роли пользователя.
type MenuGroup struct {
	ApplicationName string     `json:"application_name"`
	Data            []MenuArea `json:"data"`
}

// AreasFor возвращает упорядоченный список имён разделов для указанного
// приложения. Если приложение отсутствует в списке групп — пустой срез:
// раздел навигации просто скрывается, это не ошибка.
func AreasFor(groups []MenuGroup, application string) []string {
	for _, g := range groups {
		if g.ApplicationName != application {
			continue
		}
		areas := make([]string, 0, len(g.Data))
		for _, a := range g.Data {
			areas = append(areas, a.AreaName)
		}
		return areas
	}
	return []string{}
}
