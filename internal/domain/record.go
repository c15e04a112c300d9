package domain

import (
	"fmt"
	"strings"
)

// DatasetKind identifies one of the three collision extracts.
type DatasetKind string

const (
	KindChoropleth DatasetKind = "choropleth"
	KindHourly     DatasetKind = "hourly"
	KindDayOfWeek  DatasetKind = "day_of_week"
)

// Kinds returns every valid dataset kind in a fixed order.
func Kinds() []DatasetKind {
	return []DatasetKind{KindChoropleth, KindHourly, KindDayOfWeek}
}

// ParseKind validates a dataset kind string.
func ParseKind(s string) (DatasetKind, error) {
	switch DatasetKind(s) {
	case KindChoropleth, KindHourly, KindDayOfWeek:
		return DatasetKind(s), nil
	}
	return "", fmt.Errorf("unknown dataset kind %q", s)
}

// CountyRecord is one aggregated fatality total for a county and year.
type CountyRecord struct {
	County     string `json:"county"`
	FIPS       string `json:"fips"`
	Year       string `json:"year"`
	Fatalities int    `json:"fatalities"`
}

// HourlyRecord is one aggregated fatality total for an hour of day and year.
type HourlyRecord struct {
	Hour       int    `json:"hour"`
	Year       string `json:"year"`
	Fatalities int    `json:"fatalities"`
}

// DayRecord is one aggregated fatality total for a day of week and year.
type DayRecord struct {
	Day        string `json:"day"`
	Year       string `json:"year"`
	Fatalities int    `json:"fatalities"`
}

// FIPSWidth is the canonical width of a county FIPS code: a 2-digit state
// prefix followed by a 3-digit county number.
const FIPSWidth = 5

// PadFIPS left-pads a county FIPS code with zeros to the canonical width.
// Codes already at or beyond the canonical width are returned unchanged.
func PadFIPS(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= FIPSWidth {
		return s
	}
	return strings.Repeat("0", FIPSWidth-len(s)) + s
}

// DayNames is the fixed day-of-week axis in calendar order.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NormalizeDay maps a source day name onto the canonical calendar spelling.
// Matching is case-insensitive; unrecognized names are an error because the
// extracts enumerate a closed set of seven values.
func NormalizeDay(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	for _, name := range DayNames {
		if strings.EqualFold(trimmed, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown day name %q", s)
}
