// Command validate performs integrity checks across the three collision
// extracts before they are shipped to the dashboard: schema presence, FIPS
// width, year coverage, bucket completeness, and cross-extract consistency
// of per-year fatality totals.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data -year-start 2001 -year-end 2021
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/collisionviz/collision-dashboard/internal/dataset"
	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data", "directory containing the CSV extracts")
	stateFIPS := flag.String("state-fips", "06", "expected state FIPS prefix on county codes")
	yearStart := flag.Int("year-start", 2001, "first expected collision year")
	yearEnd := flag.Int("year-end", 2021, "last expected collision year")
	flag.Parse()

	if code := run(*dataDir, *stateFIPS, *yearStart, *yearEnd); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir, stateFIPS string, yearStart, yearEnd int) int {
	store := dataset.NewStore(dataset.Paths{
		Choropleth: filepath.Join(dataDir, "choropleth.csv"),
		Hourly:     filepath.Join(dataDir, "hourly.csv"),
		DayOfWeek:  filepath.Join(dataDir, "day_of_week.csv"),
	}, clockwork.NewRealClock(), slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetrics())

	load := &phase{name: "load"}
	counties, err := store.Counties()
	if err != nil {
		load.errorf("choropleth: %v", err)
	}
	hourly, err := store.Hourly()
	if err != nil {
		load.errorf("hourly: %v", err)
	}
	days, err := store.Days()
	if err != nil {
		load.errorf("day_of_week: %v", err)
	}

	phases := []*phase{load}
	if load.passed() {
		phases = append(phases,
			validateCounties(counties, stateFIPS, yearStart, yearEnd),
			validateHourly(hourly, yearStart, yearEnd),
			validateDays(days, yearStart, yearEnd),
			validateConsistency(hourly, days),
		)
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("\nall %d phases passed\n", len(phases))
	return 0
}

func validateCounties(recs []domain.CountyRecord, stateFIPS string, yearStart, yearEnd int) *phase {
	p := &phase{name: "choropleth"}
	if len(recs) == 0 {
		p.errorf("extract is empty")
		return p
	}
	for i, r := range recs {
		if len(r.FIPS) != domain.FIPSWidth {
			p.errorf("row %d: FIPS %q is not %d characters", i, r.FIPS, domain.FIPSWidth)
		}
		if !strings.HasPrefix(r.FIPS, stateFIPS) {
			p.errorf("row %d: FIPS %q lacks state prefix %q", i, r.FIPS, stateFIPS)
		}
		checkYear(p, i, r.Year, yearStart, yearEnd)
	}
	return p
}

func validateHourly(recs []domain.HourlyRecord, yearStart, yearEnd int) *phase {
	p := &phase{name: "hourly"}
	if len(recs) == 0 {
		p.errorf("extract is empty")
		return p
	}

	seen := make(map[string]map[int]bool)
	for i, r := range recs {
		if r.Hour < 0 || r.Hour > 23 {
			p.errorf("row %d: hour %d out of range", i, r.Hour)
			continue
		}
		checkYear(p, i, r.Year, yearStart, yearEnd)
		if seen[r.Year] == nil {
			seen[r.Year] = make(map[int]bool)
		}
		if seen[r.Year][r.Hour] {
			p.errorf("row %d: duplicate bucket year=%s hour=%d", i, r.Year, r.Hour)
		}
		seen[r.Year][r.Hour] = true
	}

	for year, hours := range seen {
		if len(hours) != 24 {
			p.errorf("year %s covers %d of 24 hours", year, len(hours))
		}
	}
	return p
}

func validateDays(recs []domain.DayRecord, yearStart, yearEnd int) *phase {
	p := &phase{name: "day_of_week"}
	if len(recs) == 0 {
		p.errorf("extract is empty")
		return p
	}

	seen := make(map[string]map[string]bool)
	for i, r := range recs {
		checkYear(p, i, r.Year, yearStart, yearEnd)
		if seen[r.Year] == nil {
			seen[r.Year] = make(map[string]bool)
		}
		if seen[r.Year][r.Day] {
			p.errorf("row %d: duplicate bucket year=%s day=%s", i, r.Year, r.Day)
		}
		seen[r.Year][r.Day] = true
	}

	for year, dayset := range seen {
		if len(dayset) != len(domain.DayNames) {
			p.errorf("year %s covers %d of %d days", year, len(dayset), len(domain.DayNames))
		}
	}
	return p
}

// validateConsistency cross-checks that the hourly and day-of-week extracts
// agree on the total fatalities per year. Both are aggregations of the same
// underlying collisions, so a mismatch means a broken extract step.
func validateConsistency(hourly []domain.HourlyRecord, days []domain.DayRecord) *phase {
	p := &phase{name: "consistency"}

	hourlyTotals := make(map[string]int)
	for _, r := range hourly {
		hourlyTotals[r.Year] += r.Fatalities
	}
	dayTotals := make(map[string]int)
	for _, r := range days {
		dayTotals[r.Year] += r.Fatalities
	}

	for year, ht := range hourlyTotals {
		dt, ok := dayTotals[year]
		if !ok {
			p.errorf("year %s present in hourly but missing from day_of_week", year)
			continue
		}
		if ht != dt {
			p.errorf("year %s: hourly total %d != day_of_week total %d", year, ht, dt)
		}
	}
	for year := range dayTotals {
		if _, ok := hourlyTotals[year]; !ok {
			p.errorf("year %s present in day_of_week but missing from hourly", year)
		}
	}
	return p
}

func checkYear(p *phase, row int, year string, yearStart, yearEnd int) {
	y, err := strconv.Atoi(year)
	if err != nil {
		p.errorf("row %d: year %q is not numeric", row, year)
		return
	}
	if y < yearStart || y > yearEnd {
		p.errorf("row %d: year %d outside [%d, %d]", row, y, yearStart, yearEnd)
	}
}
