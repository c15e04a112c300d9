// Command gendata writes deterministic mock versions of the three collision
// extracts for local development and fixtures. Counts are drawn from a fixed
// seed, so repeated runs produce byte-identical files.
//
// Usage:
//
//	go run ./cmd/gendata -out data -year-start 2001 -year-end 2021
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/collisionviz/collision-dashboard/internal/domain"
)

// A representative subset of California counties. FIPS codes are written
// without the leading zero, matching how the real aggregation step stores
// them numerically.
var counties = []struct {
	name string
	fips string
}{
	{"Alameda", "6001"},
	{"Fresno", "6019"},
	{"Kern", "6029"},
	{"Los Angeles", "6037"},
	{"Orange", "6059"},
	{"Riverside", "6065"},
	{"Sacramento", "6067"},
	{"San Bernardino", "6071"},
	{"San Diego", "6073"},
	{"San Francisco", "6075"},
	{"Santa Clara", "6085"},
	{"Shasta", "6089"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "data", "output directory for the CSV extracts")
	yearStart := flag.Int("year-start", 2001, "first collision year (inclusive)")
	yearEnd := flag.Int("year-end", 2021, "last collision year (inclusive)")
	flag.Parse()

	if *yearStart > *yearEnd {
		return fmt.Errorf("-year-start %d exceeds -year-end %d", *yearStart, *yearEnd)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Fixed seed keeps fixtures reproducible across runs.
	rng := rand.New(rand.NewSource(20))

	years := make([]string, 0, *yearEnd-*yearStart+1)
	for y := *yearStart; y <= *yearEnd; y++ {
		years = append(years, strconv.Itoa(y))
	}

	if err := writeChoropleth(filepath.Join(*outDir, "choropleth.csv"), years, rng); err != nil {
		return err
	}
	if err := writeHourly(filepath.Join(*outDir, "hourly.csv"), years, rng); err != nil {
		return err
	}
	if err := writeDayOfWeek(filepath.Join(*outDir, "day_of_week.csv"), years, rng); err != nil {
		return err
	}

	log.Printf("wrote extracts for %d years to %s", len(years), *outDir)
	return nil
}

func writeChoropleth(path string, years []string, rng *rand.Rand) error {
	rows := [][]string{{"county", "FIPS", "year_option", "killed_victims"}}
	for _, year := range years {
		for _, c := range counties {
			// Larger counties get larger baselines.
			base := 5 + rng.Intn(40)
			if c.name == "Los Angeles" {
				base += 150
			}
			rows = append(rows, []string{c.name, c.fips, year, strconv.Itoa(base)})
		}
	}
	return writeCSV(path, rows)
}

func writeHourly(path string, years []string, rng *rand.Rand) error {
	rows := [][]string{{"collision_hour", "year_option", "killed_victims"}}
	for _, year := range years {
		for hour := 0; hour < 24; hour++ {
			// Evening hours peak, mirroring the real distribution.
			n := 2 + rng.Intn(6)
			if hour >= 17 && hour <= 23 {
				n += 5 + rng.Intn(8)
			}
			rows = append(rows, []string{strconv.Itoa(hour), year, strconv.Itoa(n)})
		}
	}
	return writeCSV(path, rows)
}

func writeDayOfWeek(path string, years []string, rng *rand.Rand) error {
	rows := [][]string{{"collision_day", "year_option", "killed_victims"}}
	for _, year := range years {
		for _, day := range domain.DayNames {
			n := 15 + rng.Intn(20)
			if day == "Saturday" || day == "Sunday" {
				n += 10 + rng.Intn(10)
			}
			rows = append(rows, []string{day, year, strconv.Itoa(n)})
		}
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
