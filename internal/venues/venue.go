// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package venues

import (
	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/places"
)

// Venue is a candidate meeting place with provider data already parsed
// into usable types.
type Venue struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Address    string         `json:"address"`
	Coordinate geo.Coordinate `json:"coordinate"`
	City       string         `json:"city,omitempty"`
	District   string         `json:"district,omitempty"`

	// Rating is the provider rating on a 1..5 scale; HasRating is false
	// when the provider reported none (scoring then assumes 3.5).
	Rating    float64 `json:"rating"`
	HasRating bool    `json:"hasRating"`

	ReviewCount int    `json:"reviewCount"`
	PhotoCount  int    `json:"photoCount"`
	Cost        string `json:"cost,omitempty"`

	Tag         string `json:"-"`
	ParkingType string `json:"-"`
	NaviPOIID   string `json:"-"`

	// SourceKeyword records which search keyword produced this venue in a
	// multi-keyword search; empty for single-keyword searches.
	SourceKeyword string `json:"sourceKeyword,omitempty"`
}

// POI reassembles a provider-shaped record carrying the fields requirement
// matching inspects.
func (v *Venue) POI() *places.POI {
	return &places.POI{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		Address:     places.FlexString(v.Address),
		CityName:    v.City,
		District:    v.District,
		Tag:         places.FlexString(v.Tag),
		ParkingType: places.FlexString(v.ParkingType),
		NaviPOIID:   places.FlexString(v.NaviPOIID),
	}
}

// fromPOI converts a provider record; ok is false when the record has no
// usable coordinates.
func fromPOI(poi places.POI, sourceKeyword string) (Venue, bool) {
	coord, err := poi.Coordinate()
	if err != nil {
		return Venue{}, false
	}

	rating := poi.BizExt.Rating.Float(0)
	return Venue{
		ID:            poi.ID,
		Name:          poi.Name,
		Type:          poi.Type,
		Address:       poi.Address.String(),
		Coordinate:    coord,
		City:          poi.CityName,
		District:      poi.District,
		Rating:        rating,
		HasRating:     rating > 0,
		ReviewCount:   poi.BizExt.ReviewCount.Int(0),
		PhotoCount:    len(poi.Photos),
		Cost:          poi.BizExt.Cost.String(),
		Tag:           poi.Tag.String(),
		ParkingType:   poi.ParkingType.String(),
		NaviPOIID:     poi.NaviPOIID.String(),
		SourceKeyword: sourceKeyword,
	}, true
}
