package utils

import "time"

// DateLayout — формат дат во всём приложении (ISO, без времени)
const DateLayout = "2006-01-02"

// ParseDate парсит дату ISO-формата
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// DateOf обрезает момент времени до календарной даты (локальная зона сервера)
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween возвращает число целых дней между двумя датами
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// LastNDays возвращает n последних дат, начиная с самой старой,
// последняя дата — сегодняшняя
func LastNDays(now time.Time, n int) []string {
	today := DateOf(now)
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i).Format(DateLayout))
	}
	return days
}
