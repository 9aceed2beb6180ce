package models

// TripStatus отражает, состоялась ли поездка
type TripStatus string

const (
	TripStatusPast   TripStatus = "past"
	TripStatusFuture TripStatus = "future"
)

// DefaultCurrencySymbol используется, когда у поездки не задана валюта
const DefaultCurrencySymbol = "$"

// DateLayout формат календарной даты (ключи itinerary, startDate, endDate)
const DateLayout = "2006-01-02"

// Trip представляет одну поездку со всем её содержимым.
// Поля и JSON-теги совпадают с форматом, который хранится локально и в бэкапе.
type Trip struct {
	DayRatings      map[string]int             `json:"dayRatings"`
	Itinerary       map[string][]ItineraryItem `json:"itinerary"`
	DepartureFlight *FlightInfo                `json:"departureFlight,omitempty"`
	ReturnFlight    *FlightInfo                `json:"returnFlight,omitempty"`
	ID              string                     `json:"id"`
	Title           string                     `json:"title"`
	Location        string                     `json:"location"`
	StartDate       string                     `json:"startDate"`
	EndDate         string                     `json:"endDate"`
	Description     string                     `json:"description"`
	Status          TripStatus                 `json:"status"`
	CoverImage      string                     `json:"coverImage"`
	DefaultCurrency string                     `json:"defaultCurrency,omitempty"`
	Photos          []Photo                    `json:"photos"`
	Comments        []Comment                  `json:"comments"`
	FavoriteDays    []string                   `json:"favoriteDays,omitempty"`
	Budget          float64                    `json:"budget"`
	Rating          int                        `json:"rating"`
	IsPinned        bool                       `json:"isPinned,omitempty"`
}

// Currency returns the trip's default currency or the "$" fallback.
func (t *Trip) Currency() string {
	if t.DefaultCurrency != "" {
		return t.DefaultCurrency
	}
	return DefaultCurrencySymbol
}

// AllItems returns every itinerary item across all days, in no particular day order.
func (t *Trip) AllItems() []ItineraryItem {
	var items []ItineraryItem
	for _, day := range t.Itinerary {
		items = append(items, day...)
	}
	return items
}

// Clone создает глубокую копию поездки.
// Все изменения поездки делаются через копию: исходное значение никогда не мутируется.
func (t *Trip) Clone() Trip {
	c := *t

	if t.DayRatings != nil {
		c.DayRatings = make(map[string]int, len(t.DayRatings))
		for k, v := range t.DayRatings {
			c.DayRatings[k] = v
		}
	}

	if t.Itinerary != nil {
		c.Itinerary = make(map[string][]ItineraryItem, len(t.Itinerary))
		for date, items := range t.Itinerary {
			c.Itinerary[date] = append([]ItineraryItem(nil), items...)
		}
	}

	if t.DepartureFlight != nil {
		f := *t.DepartureFlight
		c.DepartureFlight = &f
	}
	if t.ReturnFlight != nil {
		f := *t.ReturnFlight
		c.ReturnFlight = &f
	}

	if t.Photos != nil {
		c.Photos = make([]Photo, len(t.Photos))
		for i := range t.Photos {
			c.Photos[i] = t.Photos[i].Clone()
		}
	}
	c.Comments = cloneSlice(t.Comments)
	c.FavoriteDays = cloneSlice(t.FavoriteDays)

	return c
}

// FlightInfo описывает рейс (или другой транспорт) в начале или в конце поездки
type FlightInfo struct {
	Code      string `json:"code"`
	Gate      string `json:"gate"`
	Airport   string `json:"airport"`
	Transport string `json:"transport"`
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
