package model

// Course учебный курс, к которому относится занятие
type Course struct {
	ID string `json:"id"`
	// Code legacy-поле старого API, дублирует ID
	Code   string `json:"code,omitempty"`
	Label  string `json:"label"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type,omitempty"`
	Online bool   `json:"online,omitempty"`
	URL    string `json:"url,omitempty"`
}

// CanonicalID возвращает нормализованный идентификатор курса
func (c *Course) CanonicalID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Code
}

// HiddenCourse запись в списке скрытых пользователем курсов.
// Совпадение идёт по идентификатору курса.
type HiddenCourse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
