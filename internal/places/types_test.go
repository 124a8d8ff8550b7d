// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package places

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain string", `"4.5"`, "4.5"},
		{"empty array", `[]`, ""},
		{"populated array", `["a","b"]`, ""},
		{"null", `null`, ""},
		{"number", `4.5`, "4.5"},
		{"integer", `120`, "120"},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if f.String() != tt.want {
				t.Errorf("got %q, want %q", f, tt.want)
			}
		})
	}
}

func TestFlexStringNumericAccessors(t *testing.T) {
	if got := FlexString("4.5").Float(3.5); got != 4.5 {
		t.Errorf("Float = %v, want 4.5", got)
	}
	if got := FlexString("").Float(3.5); got != 3.5 {
		t.Errorf("Float fallback = %v, want 3.5", got)
	}
	if got := FlexString("not a number").Float(3.5); got != 3.5 {
		t.Errorf("Float unparseable = %v, want 3.5", got)
	}
	if got := FlexString("120").Int(0); got != 120 {
		t.Errorf("Int = %v, want 120", got)
	}
	if got := FlexString("").Int(7); got != 7 {
		t.Errorf("Int fallback = %v, want 7", got)
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLng float64
		wantLat float64
		wantErr bool
	}{
		{"valid", "116.397200,39.916300", 116.3972, 39.9163, false},
		{"spaces", " 116.4 , 39.9 ", 116.4, 39.9, false},
		{"missing comma", "116.4", 0, 0, true},
		{"empty", "", 0, 0, true},
		{"non-numeric", "east,north", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, err := ParseLocation(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLocation(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocation(%q) error = %v", tt.in, err)
			}
			if coord.Lng != tt.wantLng || coord.Lat != tt.wantLat {
				t.Errorf("got %+v, want (%v,%v)", coord, tt.wantLng, tt.wantLat)
			}
		})
	}
}

func TestPOIUnmarshalDirtyPayload(t *testing.T) {
	// Providers return [] instead of "" for absent string fields.
	raw := `{
		"id":"B002","name":"Quiet Cafe","type":"Food;Cafe",
		"address":[],"location":"116.400000,39.900000",
		"tag":"wifi,quiet","parking_type":[],
		"biz_ext":{"rating":"4.7","cost":[],"review_count":832},
		"photos":[{"title":[],"url":"http://x/1.jpg"}]
	}`

	var p POI
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if p.Address.String() != "" {
		t.Errorf("address = %q, want empty", p.Address)
	}
	if got := p.BizExt.Rating.Float(3.5); got != 4.7 {
		t.Errorf("rating = %v, want 4.7", got)
	}
	if got := p.BizExt.ReviewCount.Int(0); got != 832 {
		t.Errorf("review_count = %v, want 832", got)
	}
	if len(p.Photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(p.Photos))
	}
}
