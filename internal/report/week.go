package report

import (
	"fmt"
	"regexp"
	"time"
)

var weekKeyPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// WeekKey returns the ISO-8601 week identifier of a date, e.g. "2024-W02".
// The date is shifted to the Thursday of its week (Mon=1..Sun=7) so weeks
// spanning a year boundary resolve to the year holding the majority of their
// days, then the 1-based ordinal is counted from that year's January 1.
func WeekKey(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	thursday := d.AddDate(0, 0, 4-isoWeekday(d))
	week := (thursday.YearDay() + 6) / 7
	return fmt.Sprintf("%d-W%02d", thursday.Year(), week)
}

// WeekRange returns the Monday and Sunday bounding the date's calendar week.
// Note this label anchor differs from the Thursday used by WeekKey; near a
// year boundary the range can start in a different year than the key names.
func WeekRange(t time.Time) (time.Time, time.Time) {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	monday := d.AddDate(0, 0, 1-isoWeekday(d))
	return monday, monday.AddDate(0, 0, 6)
}

// ValidWeekKey reports whether s looks like a week identifier ("2024-W02").
func ValidWeekKey(s string) bool {
	return weekKeyPattern.MatchString(s)
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
