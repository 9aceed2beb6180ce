package validation

import (
	"fmt"
	"regexp"
	"time"
)

// ClockPattern формат времени события: HH:mm, 24 часа
var ClockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// dateLayout совпадает с models.DateLayout; пакет validation не зависит от models
const dateLayout = "2006-01-02"

// ValidateClock проверяет строку времени вида "09:30"
func ValidateClock(clock string) error {
	if !ClockPattern.MatchString(clock) {
		return fmt.Errorf("invalid time %q: expected HH:mm", clock)
	}
	return nil
}

// ParseDate разбирает календарную дату YYYY-MM-DD
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// ValidateDateRange проверяет, что обе даты корректны и start <= end
func ValidateDateRange(start, end string) error {
	s, err := ParseDate(start)
	if err != nil {
		return err
	}
	e, err := ParseDate(end)
	if err != nil {
		return err
	}
	if e.Before(s) {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return nil
}

// ValidateExpense проверяет, что сумма расхода неотрицательна
func ValidateExpense(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("expense must not be negative, got %v", amount)
	}
	return nil
}
