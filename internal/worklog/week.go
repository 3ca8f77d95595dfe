package worklog

import (
	"fmt"
	"time"
)

// DateLayout is the business-day key format.
const DateLayout = "2006-01-02"

// The lab runs on Beijing time regardless of where the server is hosted;
// "today" is always the UTC+8 calendar date.
var beijing = time.FixedZone("UTC+8", 8*60*60)

// Today returns the current business-day key.
func Today() string {
	return DayKey(time.Now())
}

// DayKey converts an instant into its UTC+8 calendar date.
func DayKey(t time.Time) string {
	return t.In(beijing).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD key and anchors it at midnight UTC+8.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, beijing)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Day is one business day of a week.
type Day struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

var weekdayLabels = []string{"周一", "周二", "周三", "周四", "周五"}

// WeekRange enumerates Monday through Friday of the week containing date.
// Every weekday of one week maps to the same five days; Sunday belongs to
// the week that ended the day before, Saturday to the week just finished.
func WeekRange(date string) ([]Day, error) {
	anchor, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	offset := int(time.Monday - anchor.Weekday())
	if anchor.Weekday() == time.Sunday {
		offset = -6
	}
	monday := anchor.AddDate(0, 0, offset)

	days := make([]Day, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		days = append(days, Day{
			Date:  monday.AddDate(0, 0, i).Format(DateLayout),
			Label: label,
		})
	}
	return days, nil
}

// IsWeekend reports whether the date falls on Saturday or Sunday. Weekend
// dates stay reachable as explicit queries but carry zero expected
// submissions.
func IsWeekend(date string) (bool, error) {
	t, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday, nil
}
