package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
)

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2024, time.March, 4, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), ledger.Day(in))
}

func TestNYSECalendar(t *testing.T) {
	cal := ledger.NYSECalendar{}

	t.Run("2024 holidays are closed", func(t *testing.T) {
		holidays := []string{
			"2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27",
			"2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25",
		}
		for _, h := range holidays {
			assert.False(t, cal.IsTradingDay(mustDate(h)), h)
		}
	})

	tests := []struct {
		name string
		day  string
		want bool
	}{
		{"regular weekday", "2024-03-05", true},
		{"saturday", "2024-03-09", false},
		{"sunday", "2024-03-10", false},
		{"christmas on sunday observed monday", "2022-12-26", false},
		{"new year on saturday is not moved back", "2021-12-31", true},
		{"independence day on saturday observed friday", "2026-07-03", false},
		{"good friday 2025", "2025-04-18", false},
		{"juneteenth before 2022 is open", "2021-06-18", true},
		{"day after thanksgiving is open", "2024-11-29", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsTradingDay(mustDate(tt.day)))
		})
	}
}

func TestHolidayCalendar(t *testing.T) {
	cal := ledger.NewHolidayCalendar(mustDate("2024-03-06"))

	assert.True(t, cal.IsTradingDay(mustDate("2024-03-05")))
	assert.False(t, cal.IsTradingDay(mustDate("2024-03-06")))
	assert.False(t, cal.IsTradingDay(mustDate("2024-03-09")))
	assert.True(t, cal.IsTradingDay(mustDate("2024-03-29")), "only listed dates are holidays")
}
