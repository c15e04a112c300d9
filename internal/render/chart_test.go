package render_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/render"
)

func TestHourlyBars_FixedAxisWithZeroFill(t *testing.T) {
	recs := []domain.HourlyRecord{
		{Hour: 1, Year: "2020", Fatalities: 5},
		{Hour: 23, Year: "2020", Fatalities: 2},
	}

	view := render.HourlyBars(recs, "2020")

	require.Len(t, view.Labels, 24)
	require.Len(t, view.Values, 24)
	assert.Equal(t, "0", view.Labels[0])
	assert.Equal(t, "23", view.Labels[23])
	assert.Equal(t, 0, view.Values[0], "absent hours render as zero bars")
	assert.Equal(t, 5, view.Values[1])
	assert.Equal(t, 2, view.Values[23])

	assert.Equal(t, 7, view.Summary.Total)
	assert.Equal(t, "1", view.Summary.Peak)
	assert.Equal(t, 5, view.Summary.PeakValue)
	assert.Equal(t, "2020", view.Year)
}

func TestHourlyBars_AllYearsSumsPerBucket(t *testing.T) {
	recs := []domain.HourlyRecord{
		{Hour: 8, Year: "2020", Fatalities: 3},
		{Hour: 8, Year: "2021", Fatalities: 4},
	}

	view := render.HourlyBars(recs, domain.AllYears)
	assert.Equal(t, 7, view.Values[8], "same bucket across years must aggregate")
}

func TestDayOfWeekBars_CalendarOrder(t *testing.T) {
	recs := []domain.DayRecord{
		{Day: "Sunday", Year: "2020", Fatalities: 9},
		{Day: "Monday", Year: "2020", Fatalities: 4},
	}

	view := render.DayOfWeekBars(recs, "2020")

	require.Len(t, view.Labels, 7)
	assert.Equal(t, "Monday", view.Labels[0])
	assert.Equal(t, "Sunday", view.Labels[6])
	assert.Equal(t, 4, view.Values[0])
	assert.Equal(t, 9, view.Values[6])
	assert.Equal(t, "Sunday", view.Summary.Peak)
}

func TestChoropleth_JoinsByFIPS(t *testing.T) {
	recs := []domain.CountyRecord{
		{County: "Los Angeles", FIPS: "06037", Year: "2020", Fatalities: 250},
		{County: "Alameda", FIPS: "06001", Year: "2020", Fatalities: 42},
	}
	geom := domain.CountyGeometry{
		GeoJSON:  json.RawMessage(`{"type":"FeatureCollection","features":[]}`),
		Features: 58,
	}

	view := render.Choropleth(recs, geom, "2020")

	require.Len(t, view.Locations, 2)
	assert.Equal(t, []string{"06001", "06037"}, view.Locations, "locations sorted by FIPS")
	assert.Equal(t, []int{42, 250}, view.Values)
	assert.Contains(t, view.Hover[1], "Los Angeles")
	assert.Contains(t, view.Hover[1], "06037")
	assert.Equal(t, "YlOrRd", view.ColorScale)
	assert.JSONEq(t, string(geom.GeoJSON), string(view.Geometry))

	assert.Equal(t, 292, view.Summary.Total)
	assert.Equal(t, "Los Angeles", view.Summary.Peak)
}

func TestChoropleth_AllYearsAggregatesPerCounty(t *testing.T) {
	recs := []domain.CountyRecord{
		{County: "Alameda", FIPS: "06001", Year: "2020", Fatalities: 42},
		{County: "Alameda", FIPS: "06001", Year: "2021", Fatalities: 38},
	}

	view := render.Choropleth(recs, domain.CountyGeometry{}, domain.AllYears)

	require.Len(t, view.Locations, 1)
	assert.Equal(t, 80, view.Values[0])
}

func TestChoropleth_Empty(t *testing.T) {
	view := render.Choropleth(nil, domain.CountyGeometry{}, "1999")
	assert.Empty(t, view.Locations)
	assert.Equal(t, render.Summary{}, view.Summary)
}

func TestBarPNG(t *testing.T) {
	view := render.HourlyBars([]domain.HourlyRecord{
		{Hour: 7, Year: "2020", Fatalities: 12},
		{Hour: 17, Year: "2020", Fatalities: 20},
	}, "2020")

	img, err := render.BarPNG(view)
	require.NoError(t, err)
	require.NotEmpty(t, img)

	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG\r\n\x1a\n")))
}
