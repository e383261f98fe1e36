// Package reservations builds the calendar views from the reservations
// feed: a weekday-aligned day grid for the full calendar and ordinal-label
// cards for the mobile list.
package reservations

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// NoReservationsMessage is shown when a month has no reservation cards.
const NoReservationsMessage = "No reservations found for this month."

// TimeRange is one reservation slot.
type TimeRange struct {
	TimeStart string `json:"timeStart"`
	TimeEnd   string `json:"timeEnd"`
}

// Reservation is one feed record: all slots for a single date.
type Reservation struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Day   int         `json:"day"`
	Times []TimeRange `json:"times"`
}

// Day is one grid cell in the month view.
type Day struct {
	Day     int         `json:"day"`
	Weekday string      `json:"weekday"`
	Times   []TimeRange `json:"times,omitempty"`
}

// Card is one mobile-list entry, e.g. "3rd - Wednesday".
type Card struct {
	Label string      `json:"label"`
	Times []TimeRange `json:"times"`
}

// MonthView is the rendered calendar month.
type MonthView struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Title string `json:"title"`

	// LeadingBlanks is the number of placeholder cells before day 1 so the
	// grid starts on Sunday.
	LeadingBlanks int    `json:"leading_blanks"`
	Days          []Day  `json:"days"`
	Cards         []Card `json:"cards"`
}

// LoadFile reads and parses the reservations feed at path.
func LoadFile(path string) ([]Reservation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reservations feed: %w", err)
	}
	var reservations []Reservation
	if err := json.Unmarshal(data, &reservations); err != nil {
		return nil, fmt.Errorf("parse reservations feed: %w", err)
	}
	return reservations, nil
}

// BuildMonth renders one calendar month (month is 1-12) from the feed.
// Days carry the slots of matching reservations; cards are emitted in feed
// order for every reservation in the month.
func BuildMonth(feed []Reservation, year, month int) MonthView {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	view := MonthView{
		Year:          year,
		Month:         month,
		Title:         fmt.Sprintf("%s %d", first.Month(), year),
		LeadingBlanks: int(first.Weekday()),
	}

	for day := 1; day <= daysInMonth; day++ {
		cell := Day{
			Day:     day,
			Weekday: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday().String(),
		}
		for _, r := range feed {
			if r.Year == year && r.Month == month && r.Day == day {
				cell.Times = append(cell.Times, r.Times...)
			}
		}
		view.Days = append(view.Days, cell)
	}

	for _, r := range feed {
		if r.Year != year || r.Month != month {
			continue
		}
		weekday := time.Date(year, time.Month(month), r.Day, 0, 0, 0, 0, time.UTC).Weekday()
		view.Cards = append(view.Cards, Card{
			Label: fmt.Sprintf("%d%s - %s", r.Day, ordinal(r.Day), weekday),
			Times: r.Times,
		})
	}

	return view
}

// PrevMonth steps the (year, month) pair one month back.
func PrevMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth steps the (year, month) pair one month forward.
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

func ordinal(d int) string {
	if d > 3 && d < 21 {
		return "th"
	}
	switch d % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
