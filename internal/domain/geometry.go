package domain

import (
	"context"
	"encoding/json"
)

// CountyGeometry holds a county-boundary FeatureCollection, kept as raw
// GeoJSON because the browser consumes it verbatim.
type CountyGeometry struct {
	GeoJSON  json.RawMessage
	Features int
}

// GeometryProvider supplies county boundary polygons for the choropleth.
// stateFIPS scopes the collection to one state's counties by FIPS prefix;
// an empty prefix returns the full nationwide collection.
type GeometryProvider interface {
	Boundaries(ctx context.Context, stateFIPS string) (CountyGeometry, error)
}
