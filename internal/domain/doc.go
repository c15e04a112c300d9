// Package domain models the pre-aggregated California traffic collision
// extracts behind the dashboard.
//
// # Data Source
//
// The extracts are derived from the California Traffic Collisions data set
// published on Kaggle (SWITRS, the Statewide Integrated Traffic Records
// System). An offline aggregation step groups fatal-collision rows by
// county, by hour of day, and by day of week, producing three flat CSV
// files consumed here. Each row carries one fatality total for one
// dimension value and one year.
//
// # CSV Conventions
//
// Column schemas are fixed and implicit (no header variation is tolerated):
//
//	choropleth.csv:   county,FIPS,year_option,killed_victims
//	hourly.csv:       collision_hour,year_option,killed_victims
//	day_of_week.csv:  collision_day,year_option,killed_victims
//
// FIPS codes:
//
//	The source stores county FIPS codes numerically, which strips the
//	leading zero every California code carries ("6001" instead of "06001").
//	[PadFIPS] restores the canonical 5-digit form; the choropleth join
//	against county boundary geometry depends on it.
//
// Year column:
//
//	year_option holds the collision year as a string ("2001" through
//	"2021"). Year selection is a string equality test, never a numeric
//	range; the selector value "all" is a sentinel meaning no restriction
//	and never appears in the data itself.
//
// Day names:
//
//	collision_day holds full English day names. [NormalizeDay] maps them
//	case-insensitively onto the canonical calendar order used for the
//	day-of-week axis; anything else is a malformed row.
package domain
