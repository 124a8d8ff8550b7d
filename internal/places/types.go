// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package places

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/convenehq/convene/internal/geo"
)

// POI is one place record as returned by the provider's text and nearby
// searches. Field names follow the provider's wire format.
type POI struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Address  FlexString `json:"address"`
	Location string     `json:"location"` // "lng,lat"
	CityName string     `json:"cityname"`
	Province string     `json:"pname"`
	District string     `json:"adname"`

	// Free-text feature tags and structured hints used by requirement
	// matching.
	Tag         FlexString `json:"tag"`
	ParkingType FlexString `json:"parking_type"`
	NaviPOIID   FlexString `json:"navi_poiid"`

	Photos []Photo `json:"photos"`
	BizExt BizExt  `json:"biz_ext"`
}

// Photo is a provider photo reference; only the count matters for scoring.
type Photo struct {
	Title FlexString `json:"title"`
	URL   string     `json:"url"`
}

// BizExt carries the provider's extended business fields.
type BizExt struct {
	Rating      FlexString `json:"rating"`
	Cost        FlexString `json:"cost"`
	ReviewCount FlexString `json:"review_count"`
}

// Coordinate parses the POI's "lng,lat" location field.
func (p *POI) Coordinate() (geo.Coordinate, error) {
	return ParseLocation(p.Location)
}

// GeocodeResult is one result of coordinate geocoding.
type GeocodeResult struct {
	FormattedAddress string     `json:"formatted_address"`
	Location         string     `json:"location"` // "lng,lat"
	City             FlexString `json:"city"`
	Province         FlexString `json:"province"`
	District         FlexString `json:"district"`
}

// Coordinate parses the result's "lng,lat" location field.
func (g *GeocodeResult) Coordinate() (geo.Coordinate, error) {
	return ParseLocation(g.Location)
}

// ParseLocation parses the provider's "lng,lat" pair.
func ParseLocation(s string) (geo.Coordinate, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("places: malformed location %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("places: malformed longitude in %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("places: malformed latitude in %q: %w", s, err)
	}
	return geo.Coordinate{Lng: lng, Lat: lat}, nil
}

// FlexString tolerates the provider's habit of returning "", [], null or a
// number where a string is documented. Anything non-string decodes to the
// closest string form, with arrays collapsing to empty.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || strings.HasPrefix(trimmed, "[") {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// String returns the underlying string.
func (f FlexString) String() string { return string(f) }

// Float returns the numeric value, or fallback when empty or unparseable.
func (f FlexString) Float(fallback float64) float64 {
	if f == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return fallback
	}
	return v
}

// Int returns the integer value, or fallback when empty or unparseable.
func (f FlexString) Int(fallback int) int {
	if f == "" {
		return fallback
	}
	v, err := strconv.Atoi(string(f))
	if err != nil {
		return fallback
	}
	return v
}
