package reference

import "strconv"

// Weekdays are numbered 0=Sunday through 6=Saturday, matching time.Weekday.
var weekdayLabels = map[int]string{
	0: "Domingo",
	1: "Segunda-feira",
	2: "Terça-feira",
	3: "Quarta-feira",
	4: "Quinta-feira",
	5: "Sexta-feira",
	6: "Sábado",
}

// IsWeekday reports whether n is a valid weekday number.
func IsWeekday(n int) bool {
	return n >= 0 && n <= 6
}

// WeekdayLabel returns the display label for weekday n, or "" if out of range.
func WeekdayLabel(n int) string {
	return weekdayLabels[n]
}

// Weekdays returns the weekday options in calendar order starting at Sunday.
func Weekdays() []Option {
	opts := make([]Option, 0, len(weekdayLabels))
	for n := 0; n <= 6; n++ {
		opts = append(opts, Option{Code: strconv.Itoa(n), Label: weekdayLabels[n]})
	}
	return opts
}
