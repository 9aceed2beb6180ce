package models

// Period часть дня, к которой привязано событие без точного времени
type Period string

const (
	PeriodNone      Period = ""
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
)

// Valid reports whether p is unset or one of the known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodNone, PeriodMorning, PeriodAfternoon, PeriodNight:
		return true
	}
	return false
}

// ItemType категория события в плане поездки
type ItemType string

const (
	ItemTypeSightseeing ItemType = "sightseeing"
	ItemTypeShopping    ItemType = "shopping"
	ItemTypeEating      ItemType = "eating"
	ItemTypeTransport   ItemType = "transport"
	ItemTypeOther       ItemType = "other"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeSightseeing, ItemTypeShopping, ItemTypeEating, ItemTypeTransport, ItemTypeOther:
		return true
	}
	return false
}

// ItineraryItem одно запланированное событие дня.
// Время задается либо через Period, либо через пару Time/EndTime (HH:mm), но не одновременно.
type ItineraryItem struct {
	ID                  string   `json:"id"`
	Time                string   `json:"time,omitempty"`
	EndTime             string   `json:"endTime,omitempty"`
	Period              Period   `json:"period,omitempty"`
	Type                ItemType `json:"type"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	URL                 string   `json:"url,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	SpendingDescription string   `json:"spendingDescription,omitempty"`
	TransportMethod     string   `json:"transportMethod,omitempty"`
	TravelDuration      string   `json:"travelDuration,omitempty"`
	EstimatedExpense    float64  `json:"estimatedExpense"`
	ActualExpense       float64  `json:"actualExpense"`
}

// HasExactTime reports whether the item is scheduled to a clock time rather than a period.
func (i *ItineraryItem) HasExactTime() bool {
	return i.Period == PeriodNone && i.Time != ""
}
