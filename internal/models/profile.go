package models

// UserProfile профиль владельца журнала
type UserProfile struct {
	Name        string `json:"name"`
	Pfp         string `json:"pfp"`
	Nationality string `json:"nationality"`
	IsOnboarded bool   `json:"isOnboarded"`
}

// DefaultProfile returns the profile used before onboarding.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:        "Wanderer",
		Pfp:         "https://api.dicebear.com/7.x/avataaars/svg?seed=Wanderer",
		Nationality: "United States",
		IsOnboarded: false,
	}
}

// CustomEventType тип пользовательского события календаря
type CustomEventType string

const (
	CustomEventHoliday            CustomEventType = "holiday"
	CustomEventCustom             CustomEventType = "custom"
	CustomEventNationalityHoliday CustomEventType = "nationality-holiday"
)

// CustomEvent пользовательское событие в календаре планировщика
type CustomEvent struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	Type         CustomEventType `json:"type"`
	ReminderTime string          `json:"reminderTime,omitempty"`
	HasReminder  bool            `json:"hasReminder"`
}

// Memo заметка на доске
type Memo struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`
	Date  string `json:"date"`
}

// Language язык интерфейса
type Language string

const (
	LanguageEN   Language = "en"
	LanguageZhTW Language = "zh-TW"
	LanguageJA   Language = "ja"
	LanguageKO   Language = "ko"
)

// Valid reports whether l is a supported language code.
func (l Language) Valid() bool {
	switch l {
	case LanguageEN, LanguageZhTW, LanguageJA, LanguageKO:
		return true
	}
	return false
}

// Snapshot полный снимок локального состояния; это и есть содержимое облачного бэкапа
type Snapshot struct {
	UserProfile  UserProfile   `json:"userProfile"`
	Language     Language      `json:"language"`
	Trips        []Trip        `json:"trips"`
	CustomEvents []CustomEvent `json:"customEvents"`
	Memos        []Memo        `json:"memos"`
	DarkMode     bool          `json:"darkMode"`
}
