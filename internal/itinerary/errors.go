package itinerary

import "errors"

// Ошибки операций над планом поездки
var (
	// ErrItemNotFound событие с таким id отсутствует в указанном дне
	ErrItemNotFound = errors.New("itinerary item not found")

	// ErrDateOutOfRange дата не попадает в интервал [startDate, endDate] поездки
	ErrDateOutOfRange = errors.New("date is outside the trip range")

	// ErrNotEdgeDay рейс можно привязать только к первому или последнему дню
	ErrNotEdgeDay = errors.New("flight info is allowed only on the first or last day")

	// ErrNotEnoughTrips для объединения нужно минимум две поездки
	ErrNotEnoughTrips = errors.New("at least two trips are required to combine")

	// ErrInvalidItem событие не прошло проверку (время, период, тип или сумма)
	ErrInvalidItem = errors.New("invalid itinerary item")
)
