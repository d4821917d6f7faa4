// Package day нарезает время на календарные дни в UTC для учета прогресса.
package day

import "time"

// Layout формат даты дня в ответах API.
const Layout = "2006-01-02"

// Truncate возвращает начало календарного дня t в UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WindowStart возвращает день, на days дней раньше дня now. Окно [WindowStart, now]
// включает оба конца, то есть days+1 календарных дней.
// Для days <= 0 возвращает сам день now.
func WindowStart(now time.Time, days int) time.Time {
	today := Truncate(now)
	if days <= 0 {
		return today
	}
	return today.AddDate(0, 0, -days)
}

// Format возвращает дату в формате Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}
