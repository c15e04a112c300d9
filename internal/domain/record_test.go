package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadFIPS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "california code missing leading zero", in: "6001", want: "06001"},
		{name: "already canonical", in: "06001", want: "06001"},
		{name: "short code", in: "1", want: "00001"},
		{name: "surrounding whitespace", in: " 6037 ", want: "06037"},
		{name: "longer than canonical passes through", in: "060011", want: "060011"},
		{name: "empty", in: "", want: "00000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadFIPS(tt.in)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, len(got), FIPSWidth)
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("weekly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly")
}

func TestNormalizeDay(t *testing.T) {
	got, err := NormalizeDay("monday")
	require.NoError(t, err)
	assert.Equal(t, "Monday", got)

	got, err = NormalizeDay(" SATURDAY ")
	require.NoError(t, err)
	assert.Equal(t, "Saturday", got)

	_, err = NormalizeDay("Funday")
	require.Error(t, err)
}

func TestParseYearFilter(t *testing.T) {
	f, err := ParseYearFilter("")
	require.NoError(t, err)
	assert.True(t, f.All())

	f, err = ParseYearFilter(AllYears)
	require.NoError(t, err)
	assert.True(t, f.All())
	assert.Equal(t, "all", f.String())

	f, err = ParseYearFilter("2020")
	require.NoError(t, err)
	assert.False(t, f.All())
	assert.True(t, f.Matches("2020"))
	assert.False(t, f.Matches("2021"))
	assert.Equal(t, "2020", f.String())

	_, err = ParseYearFilter("20x1")
	require.Error(t, err)

	_, err = ParseYearFilter("20201")
	require.Error(t, err)
}

func TestFilterHourly(t *testing.T) {
	recs := []HourlyRecord{
		{Hour: 0, Year: "2019", Fatalities: 3},
		{Hour: 1, Year: "2020", Fatalities: 5},
		{Hour: 2, Year: "2020", Fatalities: 2},
		{Hour: 3, Year: "2021", Fatalities: 7},
	}

	all := FilterHourly(recs, EveryYear())
	assert.Len(t, all, len(recs), "sentinel must pass every record through")

	filtered := FilterHourly(recs, SingleYear("2020"))
	require.Len(t, filtered, 2)
	assert.Equal(t, 1, filtered[0].Hour)
	assert.Equal(t, 2, filtered[1].Hour, "input order must be preserved")
	for _, r := range filtered {
		assert.Equal(t, "2020", r.Year)
	}

	empty := FilterHourly(recs, SingleYear("1999"))
	assert.Empty(t, empty, "absent year must match zero records")

	// Source slice untouched.
	assert.Len(t, recs, 4)
}

func TestFilterCountiesAndDays(t *testing.T) {
	counties := []CountyRecord{
		{County: "Alameda", FIPS: "06001", Year: "2020", Fatalities: 40},
		{County: "Los Angeles", FIPS: "06037", Year: "2021", Fatalities: 250},
	}
	days := []DayRecord{
		{Day: "Monday", Year: "2020", Fatalities: 12},
		{Day: "Friday", Year: "2021", Fatalities: 30},
	}

	gotCounties := FilterCounties(counties, SingleYear("2021"))
	require.Len(t, gotCounties, 1)
	assert.Equal(t, "Los Angeles", gotCounties[0].County)

	gotDays := FilterDays(days, SingleYear("2020"))
	require.Len(t, gotDays, 1)
	assert.Equal(t, "Monday", gotDays[0].Day)
}
