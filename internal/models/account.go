package models

import "time"

// Account учетная запись в облачном сервисе (владелец бэкапа и календаря)
type Account struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последней выдачи токена
	ID           string     `json:"id"`                   // UUID аккаунта
	Username     string     `json:"username"`             // уникальный username
	PasswordHash string     `json:"-"`                    // argon2id хеш пароля в PHC-формате
}

// StoredFile файл в облачном хранилище аккаунта
type StoredFile struct {
	CreatedAt     time.Time         `json:"created_at"`
	ModifiedAt    time.Time         `json:"modified_at"`
	AppProperties map[string]string `json:"app_properties"`
	ID            string            `json:"id"`
	AccountID     string            `json:"account_id"`
	Name          string            `json:"name"`
	MimeType      string            `json:"mime_type"`
	Content       []byte            `json:"-"`
	Trashed       bool              `json:"trashed"`
}

// StoredEvent событие календаря аккаунта
type StoredEvent struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	CalendarID    string    `json:"calendar_id"`
	Summary       string    `json:"summary"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	StartDateTime string    `json:"start_date_time"`
	StartTimeZone string    `json:"start_time_zone"`
	EndDateTime   string    `json:"end_date_time"`
	EndTimeZone   string    `json:"end_time_zone"`
	UseDefault    bool      `json:"use_default_reminders"`
}
