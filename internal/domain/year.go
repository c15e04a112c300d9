package domain

import "fmt"

// AllYears is the selector sentinel meaning "no year restriction".
const AllYears = "all"

// YearFilter selects either a single collision year or every year. The
// sentinel is a distinct variant rather than an overloaded numeric value,
// so "all" can never collide with a real year string.
type YearFilter struct {
	year string
	all  bool
}

// EveryYear returns the filter that passes all records through.
func EveryYear() YearFilter {
	return YearFilter{all: true}
}

// SingleYear returns a filter matching exactly the given year string.
func SingleYear(year string) YearFilter {
	return YearFilter{year: year}
}

// ParseYearFilter interprets a selector value from the UI. Empty input and
// the "all" sentinel both mean every year; anything else must be a 4-digit
// year. Years outside the data simply match zero records.
func ParseYearFilter(s string) (YearFilter, error) {
	if s == "" || s == AllYears {
		return EveryYear(), nil
	}
	if len(s) != 4 {
		return YearFilter{}, fmt.Errorf("invalid year selector %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return YearFilter{}, fmt.Errorf("invalid year selector %q", s)
		}
	}
	return SingleYear(s), nil
}

// All reports whether the filter is the every-year sentinel.
func (f YearFilter) All() bool { return f.all }

// Matches reports whether a record's year passes the filter. Comparison is
// string equality, mirroring how the extracts store years.
func (f YearFilter) Matches(year string) bool {
	return f.all || f.year == year
}

func (f YearFilter) String() string {
	if f.all {
		return AllYears
	}
	return f.year
}

// FilterCounties returns the county records passing the filter, preserving
// input order. The source slice is never mutated; the every-year sentinel
// returns it as-is.
func FilterCounties(recs []CountyRecord, f YearFilter) []CountyRecord {
	return filterByYear(recs, f, func(r CountyRecord) string { return r.Year })
}

// FilterHourly returns the hourly records passing the filter.
func FilterHourly(recs []HourlyRecord, f YearFilter) []HourlyRecord {
	return filterByYear(recs, f, func(r HourlyRecord) string { return r.Year })
}

// FilterDays returns the day-of-week records passing the filter.
func FilterDays(recs []DayRecord, f YearFilter) []DayRecord {
	return filterByYear(recs, f, func(r DayRecord) string { return r.Year })
}

func filterByYear[T any](recs []T, f YearFilter, year func(T) string) []T {
	if f.All() {
		return recs
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if f.Matches(year(r)) {
			out = append(out, r)
		}
	}
	return out
}
