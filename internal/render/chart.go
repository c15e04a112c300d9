package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/collisionviz/collision-dashboard/internal/domain"
)

// ChoroplethView is the payload behind the county fatality map. Locations
// and values are parallel slices joined against the geometry by FIPS.
type ChoroplethView struct {
	Locations  []string        `json:"locations"`
	Values     []int           `json:"values"`
	Hover      []string        `json:"hover"`
	ColorScale string          `json:"color_scale"`
	Geometry   json.RawMessage `json:"geometry"`
	Summary    Summary         `json:"summary"`
	Year       string          `json:"year"`
}

// BarView is the payload behind a categorical bar chart. Labels form the
// fixed axis; Values carry one bar height per label.
type BarView struct {
	Title   string   `json:"title"`
	XTitle  string   `json:"x_title"`
	YTitle  string   `json:"y_title"`
	Labels  []string `json:"labels"`
	Values  []int    `json:"values"`
	Summary Summary  `json:"summary"`
	Year    string   `json:"year"`
}

// Summary condenses a rendered view into the headline numbers shown next
// to the chart.
type Summary struct {
	Total     int     `json:"total"`
	Mean      float64 `json:"mean"`
	Peak      string  `json:"peak"`
	PeakValue int     `json:"peak_value"`
}

const colorScale = "YlOrRd"

// Choropleth builds the county map payload from already-filtered records.
// When the every-year sentinel was selected the extract holds one row per
// county per year, so values are summed per county.
func Choropleth(recs []domain.CountyRecord, geom domain.CountyGeometry, year string) ChoroplethView {
	totals := make(map[string]int)
	names := make(map[string]string)
	for _, r := range recs {
		totals[r.FIPS] += r.Fatalities
		names[r.FIPS] = r.County
	}

	fips := make([]string, 0, len(totals))
	for f := range totals {
		fips = append(fips, f)
	}
	sort.Strings(fips)

	view := ChoroplethView{
		Locations:  make([]string, 0, len(fips)),
		Values:     make([]int, 0, len(fips)),
		Hover:      make([]string, 0, len(fips)),
		ColorScale: colorScale,
		Geometry:   geom.GeoJSON,
		Year:       year,
	}
	labels := make([]string, 0, len(fips))
	for _, f := range fips {
		view.Locations = append(view.Locations, f)
		view.Values = append(view.Values, totals[f])
		view.Hover = append(view.Hover, fmt.Sprintf("%s (%s): %d fatalities", names[f], f, totals[f]))
		labels = append(labels, names[f])
	}
	view.Summary = summarize(labels, view.Values)
	return view
}

// HourlyBars builds the hour-of-day bar chart from already-filtered
// records. The axis is always the full 24 hours; hours absent from the
// data render as zero-height bars.
func HourlyBars(recs []domain.HourlyRecord, year string) BarView {
	values := make([]int, 24)
	for _, r := range recs {
		if r.Hour >= 0 && r.Hour < len(values) {
			values[r.Hour] += r.Fatalities
		}
	}

	labels := make([]string, len(values))
	for h := range labels {
		labels[h] = strconv.Itoa(h)
	}

	return BarView{
		Title:   "Number of fatalities per hour due to collisions",
		XTitle:  "Hour",
		YTitle:  "Number of killed victims",
		Labels:  labels,
		Values:  values,
		Summary: summarize(labels, values),
		Year:    year,
	}
}

// DayOfWeekBars builds the day-of-week bar chart from already-filtered
// records. The axis is the seven days in calendar order.
func DayOfWeekBars(recs []domain.DayRecord, year string) BarView {
	index := make(map[string]int, len(domain.DayNames))
	for i, name := range domain.DayNames {
		index[name] = i
	}

	values := make([]int, len(domain.DayNames))
	for _, r := range recs {
		if i, ok := index[r.Day]; ok {
			values[i] += r.Fatalities
		}
	}

	return BarView{
		Title:   "Number of fatalities per day of week due to collisions",
		XTitle:  "Day of week",
		YTitle:  "Number of killed victims",
		Labels:  domain.DayNames,
		Values:  values,
		Summary: summarize(domain.DayNames, values),
		Year:    year,
	}
}

func summarize(labels []string, values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}

	// Sum and Mean only fail on empty input, which is guarded above.
	total, _ := stats.Sum(data)
	mean, _ := stats.Mean(data)

	peak := 0
	for i, v := range values {
		if v > values[peak] {
			peak = i
		}
	}

	return Summary{
		Total:     int(total),
		Mean:      mean,
		Peak:      labels[peak],
		PeakValue: values[peak],
	}
}
