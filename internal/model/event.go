package model

import (
	"strconv"
	"time"
)

// Event одно занятие в расписании
type Event struct {
	ID string `json:"id"`
	// LegacyADEEventID числовой идентификатор из старого ADE-экспорта,
	// используется пока новое API не отдаёт id
	LegacyADEEventID int64          `json:"_adeEventId,omitempty"`
	StartDateTime    time.Time      `json:"startDateTime"`
	EndDateTime      time.Time      `json:"endDateTime"`
	Course           Course         `json:"course"`
	Rooms            []Room         `json:"rooms,omitempty"`
	Teachers         []EventTeacher `json:"teachers,omitempty"`
	Groups           []Group        `json:"groups,omitempty"`
}

// CanonicalID возвращает нормализованный идентификатор занятия.
// Пустая строка — занятие без идентификатора (битые данные от API).
func (e *Event) CanonicalID() string {
	if e.ID != "" {
		return e.ID
	}
	if e.LegacyADEEventID != 0 {
		return strconv.FormatInt(e.LegacyADEEventID, 10)
	}
	return ""
}

// Room аудитория, в которой проходит занятие
type Room struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

// EventTeacher преподаватель занятия
type EventTeacher struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	// Name поле старого API, в новом заменено на firstname/lastname
	Name string `json:"name,omitempty"`
}

// DisplayName возвращает имя преподавателя для отображения
func (t *EventTeacher) DisplayName() string {
	if t.FirstName != "" || t.LastName != "" {
		if t.FirstName == "" {
			return t.LastName
		}
		return t.FirstName + " " + t.LastName
	}
	return t.Name
}

// Group учебная группа, для которой проводится занятие
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
