package model

// Planning один вариант расписания студента (группа, трек, опция)
type Planning struct {
	ID    string `json:"id"`
	Code  string `json:"code,omitempty"` // legacy-поле старого API, дублирует ID
	Label string `json:"label"`
	// Default помечает planning, который включается при первом входе
	Default bool   `json:"default"`
	Type    string `json:"type,omitempty"`
	// IsSelected справочный флаг от сервера; реальный выбор хранится
	// в activePlanningIds и сервером не перезаписывается
	IsSelected bool      `json:"isSelected"`
	Messages   []Message `json:"messages,omitempty"`
	Events     []Event   `json:"events"`
}

// CanonicalID возвращает нормализованный идентификатор planning'а.
// Старое API присылает code вместо id, принимаем оба.
// Пустая строка означает, что planning вообще без идентификатора.
func (p *Planning) CanonicalID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Code
}
