package model

// MessageLevel уровень важности сообщения от API расписания
type MessageLevel string

const (
	MessageLevelInfo    MessageLevel = "info"
	MessageLevelWarning MessageLevel = "warning"
	MessageLevelError   MessageLevel = "error"
)

// Message информационное сообщение, приходящее вместе с расписанием
type Message struct {
	Level MessageLevel `json:"level"`
	Code  string       `json:"code,omitempty"`
	Text  string       `json:"text"`
}

// Schedule корневой агрегат: расписание студента со всеми его planning'ами
type Schedule struct {
	Messages  []Message  `json:"messages"`
	Plannings []Planning `json:"plannings"`
}

// IsEmpty проверяет есть ли в расписании хоть один planning
func (s *Schedule) IsEmpty() bool {
	return s == nil || len(s.Plannings) == 0
}
