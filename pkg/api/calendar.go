package api

// EventDateTime момент начала или конца события в заданной зоне
type EventDateTime struct {
	DateTime string `json:"dateTime"` // RFC3339 без смещения, например 2024-03-01T09:00:00
	TimeZone string `json:"timeZone"` // IANA зона
}

// Reminders настройки напоминаний события
type Reminders struct {
	UseDefault bool `json:"useDefault"`
}

// CalendarEvent событие календаря
type CalendarEvent struct {
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Reminders   *Reminders    `json:"reminders,omitempty"`
	ID          string        `json:"id,omitempty"`
	Summary     string        `json:"summary"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
}

// EventList список событий календаря
type EventList struct {
	Items []CalendarEvent `json:"items"`
}

// PrimaryCalendar идентификатор основного календаря аккаунта
const PrimaryCalendar = "primary"
