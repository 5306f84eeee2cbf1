package ledger

import "time"

// DateFormat is the wire and storage format of calendar days.
const DateFormat = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Calendar decides which days belong on the portfolio date axis.
type Calendar interface {
	IsTradingDay(day time.Time) bool
}

// NYSECalendar treats weekends and NYSE full-day market holidays as non-trading days.
type NYSECalendar struct{}

// IsTradingDay reports whether the exchange is open on day.
func (NYSECalendar) IsTradingDay(day time.Time) bool {
	day = Day(day)
	if isWeekend(day) {
		return false
	}
	for _, h := range nyseHolidays(day.Year()) {
		if h.Equal(day) {
			return false
		}
	}
	return true
}

// HolidayCalendar skips weekends plus an explicit set of holiday dates.
type HolidayCalendar struct {
	holidays map[time.Time]struct{}
}

// NewHolidayCalendar returns a calendar closed on weekends and the given dates.
func NewHolidayCalendar(holidays ...time.Time) HolidayCalendar {
	set := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		set[Day(h)] = struct{}{}
	}
	return HolidayCalendar{holidays: set}
}

// IsTradingDay reports whether day is neither a weekend nor a listed holiday.
func (c HolidayCalendar) IsTradingDay(day time.Time) bool {
	day = Day(day)
	if isWeekend(day) {
		return false
	}
	_, holiday := c.holidays[day]
	return !holiday
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// nyseHolidays returns the observed NYSE full-day closures of a year.
// A holiday on Sunday is observed Monday; on Saturday it is observed Friday,
// except New Year's Day which the exchange does not move back into December.
func nyseHolidays(year int) []time.Time {
	holidays := []time.Time{
		nthWeekday(year, time.January, time.Monday, 3),    // Martin Luther King Jr. Day
		nthWeekday(year, time.February, time.Monday, 3),   // Washington's Birthday
		easter(year).AddDate(0, 0, -2),                    // Good Friday
		lastWeekday(year, time.May, time.Monday),          // Memorial Day
		observed(date(year, time.July, 4)),                // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving Day
		observed(date(year, time.December, 25)),           // Christmas Day
	}

	newYear := date(year, time.January, 1)
	if newYear.Weekday() == time.Sunday {
		holidays = append(holidays, newYear.AddDate(0, 0, 1))
	} else if newYear.Weekday() != time.Saturday {
		holidays = append(holidays, newYear)
	}

	if year >= 2022 {
		holidays = append(holidays, observed(date(year, time.June, 19))) // Juneteenth
	}

	return holidays
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// observed moves a Saturday holiday to Friday and a Sunday holiday to Monday.
func observed(day time.Time) time.Time {
	switch day.Weekday() {
	case time.Saturday:
		return day.AddDate(0, 0, -1)
	case time.Sunday:
		return day.AddDate(0, 0, 1)
	default:
		return day
	}
}

// nthWeekday returns the n-th occurrence (1-based) of weekday in the month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last occurrence of weekday in the month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := date(year, month+1, 0)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// easter returns Easter Sunday using the anonymous Gregorian algorithm.
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}
