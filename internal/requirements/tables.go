// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package requirements

// Canonical requirement labels. All user phrasing is normalized onto these
// before matching.
const (
	ReqParking     = "parking"
	ReqQuiet       = "quiet"
	ReqBusiness    = "business"
	ReqTransit     = "transit"
	ReqPrivateRoom = "private-room"
	ReqWiFi        = "wifi"
	ReqLongStay    = "long-stay"
	ReqKidFriendly = "kid-friendly"
	Req24Hours     = "24h"
)

// canonicalOrder fixes the evaluation order so scoring is deterministic
// regardless of map iteration.
var canonicalOrder = []string{
	ReqParking, ReqQuiet, ReqBusiness, ReqTransit, ReqPrivateRoom,
	ReqWiFi, ReqLongStay, ReqKidFriendly, Req24Hours,
}

// requirementAliases maps each canonical requirement to the free-text
// phrases that express it. Matching is case-insensitive substring.
var requirementAliases = map[string][]string{
	ReqParking:     {"parking", "car park", "parking lot", "free parking", "easy to park"},
	ReqQuiet:       {"quiet", "calm", "peaceful", "cozy", "good atmosphere", "comfortable"},
	ReqBusiness:    {"business", "meeting", "office", "work talk", "negotiation"},
	ReqTransit:     {"transit", "metro", "subway", "bus", "convenient transport", "easy to reach"},
	ReqPrivateRoom: {"private room", "private booth", "secluded", "separate room"},
	ReqWiFi:        {"wifi", "wi-fi", "wireless", "internet access"},
	ReqLongStay:    {"long stay", "sit for hours", "stay a while", "work for hours", "linger"},
	ReqKidFriendly: {"kid", "children", "family friendly", "child", "with kids"},
	Req24Hours:     {"24 hour", "24h", "overnight", "all night", "late night"},
}

// fieldRule describes a tag/field hard-match rule for one requirement.
type fieldRule struct {
	fields []string // POI fields to inspect
	values []string // case-insensitive substrings that satisfy the rule
}

// POI field selectors used by fieldRule.
const (
	fieldTag         = "tag"
	fieldType        = "type"
	fieldAddress     = "address"
	fieldParkingType = "parking_type"
	fieldNaviPOIID   = "navi_poiid"
)

// hardMatchRules is the high-confidence tier: explicit provider tags or
// structured fields stating the feature outright. Requirements without a
// rule here can only match through the brand or category tiers.
var hardMatchRules = map[string]fieldRule{
	ReqParking: {
		fields: []string{fieldTag, fieldParkingType, fieldNaviPOIID},
		values: []string{"parking", "car park", "garage"},
	},
	ReqQuiet: {
		fields: []string{fieldTag},
		values: []string{"quiet", "ambiance", "cozy", "elegant", "comfortable"},
	},
	ReqBusiness: {
		fields: []string{fieldTag, fieldType},
		values: []string{"business", "meeting", "office"},
	},
	ReqTransit: {
		fields: []string{fieldTag, fieldAddress},
		values: []string{"metro", "subway", "bus", "station", "transit hub"},
	},
	ReqPrivateRoom: {
		fields: []string{fieldTag},
		values: []string{"private room", "booth", "private"},
	},
	ReqWiFi: {
		fields: []string{fieldTag},
		values: []string{"wifi", "wireless", "internet"},
	},
}

// BrandFeatures scores how strongly a known chain satisfies each
// requirement, on a 0..1 scale. A venue whose name contains the brand
// inherits these at medium confidence when the strength is at least
// brandThreshold.
var BrandFeatures = map[string]map[string]float64{
	// Coffee chains.
	"Starbucks":      {ReqQuiet: 0.8, ReqWiFi: 1.0, ReqBusiness: 0.7, ReqParking: 0.3, ReqLongStay: 0.9},
	"Luckin":         {ReqQuiet: 0.4, ReqWiFi: 0.7, ReqBusiness: 0.4, ReqParking: 0.3, ReqLongStay: 0.5},
	"Costa":          {ReqQuiet: 0.9, ReqWiFi: 1.0, ReqBusiness: 0.8, ReqParking: 0.4, ReqLongStay: 0.9},
	"Maan Coffee":    {ReqQuiet: 0.9, ReqWiFi: 0.9, ReqBusiness: 0.6, ReqParking: 0.5, ReqLongStay: 1.0},
	"Pacific Coffee": {ReqQuiet: 0.8, ReqWiFi: 0.9, ReqBusiness: 0.7, ReqParking: 0.4, ReqLongStay: 0.8},
	"Manner":         {ReqQuiet: 0.5, ReqWiFi: 0.6, ReqBusiness: 0.4, ReqParking: 0.2, ReqLongStay: 0.3},
	"Seesaw":         {ReqQuiet: 0.8, ReqWiFi: 0.9, ReqBusiness: 0.6, ReqParking: 0.3, ReqLongStay: 0.8},
	"M Stand":        {ReqQuiet: 0.7, ReqWiFi: 0.8, ReqBusiness: 0.5, ReqParking: 0.3, ReqLongStay: 0.7},
	"Tims":           {ReqQuiet: 0.6, ReqWiFi: 0.8, ReqBusiness: 0.5, ReqParking: 0.4, ReqLongStay: 0.6},
	"UBC Coffee":     {ReqQuiet: 0.9, ReqWiFi: 0.8, ReqBusiness: 0.8, ReqParking: 0.6, ReqLongStay: 0.9, ReqPrivateRoom: 0.7},
	"Zoo Coffee":     {ReqQuiet: 0.7, ReqWiFi: 0.8, ReqBusiness: 0.5, ReqParking: 0.4, ReqLongStay: 0.8, ReqKidFriendly: 0.6},
	"Kafelaku":       {ReqQuiet: 0.8, ReqWiFi: 0.8, ReqBusiness: 0.6, ReqParking: 0.4, ReqLongStay: 0.8},
	"Peet's":         {ReqQuiet: 0.7, ReqWiFi: 0.8, ReqBusiness: 0.5, ReqParking: 0.3, ReqLongStay: 0.7},
	"NOWWA":          {ReqQuiet: 0.5, ReqWiFi: 0.6, ReqBusiness: 0.4, ReqParking: 0.2, ReqLongStay: 0.4},

	// Sit-down restaurants.
	"Haidilao":            {ReqPrivateRoom: 0.9, ReqParking: 0.8, ReqQuiet: 0.2, ReqKidFriendly: 0.9, Req24Hours: 0.3},
	"Xibei":               {ReqPrivateRoom: 0.7, ReqParking: 0.6, ReqQuiet: 0.5, ReqKidFriendly: 0.7},
	"Grandma's":           {ReqPrivateRoom: 0.5, ReqParking: 0.5, ReqQuiet: 0.3, ReqKidFriendly: 0.6},
	"Green Tea":           {ReqPrivateRoom: 0.4, ReqParking: 0.5, ReqQuiet: 0.4, ReqKidFriendly: 0.5},
	"Xiaolongkan":         {ReqPrivateRoom: 0.6, ReqParking: 0.5, ReqQuiet: 0.2, ReqKidFriendly: 0.4},
	"Xiabu Xiabu":         {ReqPrivateRoom: 0.0, ReqParking: 0.4, ReqQuiet: 0.3, ReqKidFriendly: 0.5},
	"Dalongyi":            {ReqPrivateRoom: 0.5, ReqParking: 0.5, ReqQuiet: 0.2, ReqKidFriendly: 0.4},
	"Meizhou Dongpo":      {ReqPrivateRoom: 0.8, ReqParking: 0.7, ReqQuiet: 0.6, ReqKidFriendly: 0.7, ReqBusiness: 0.7},
	"Quanjude":            {ReqPrivateRoom: 0.9, ReqParking: 0.7, ReqQuiet: 0.6, ReqKidFriendly: 0.6, ReqBusiness: 0.8},
	"Da Dong":             {ReqPrivateRoom: 0.9, ReqParking: 0.8, ReqQuiet: 0.8, ReqBusiness: 0.9},
	"Din Tai Fung":        {ReqPrivateRoom: 0.5, ReqParking: 0.6, ReqQuiet: 0.6, ReqKidFriendly: 0.7},
	"Nanjing Impressions": {ReqPrivateRoom: 0.6, ReqParking: 0.5, ReqQuiet: 0.3, ReqKidFriendly: 0.6},
	"Jiumaojiu":           {ReqPrivateRoom: 0.4, ReqParking: 0.5, ReqQuiet: 0.4, ReqKidFriendly: 0.6},
	"Tai Er":              {ReqPrivateRoom: 0.0, ReqParking: 0.4, ReqQuiet: 0.3, ReqKidFriendly: 0.4},

	// Fast food and western.
	"McDonald's":  {ReqParking: 0.5, ReqWiFi: 0.8, ReqKidFriendly: 0.9, Req24Hours: 0.8},
	"KFC":         {ReqParking: 0.5, ReqWiFi: 0.7, ReqKidFriendly: 0.9, Req24Hours: 0.6},
	"Pizza Hut":   {ReqPrivateRoom: 0.3, ReqParking: 0.5, ReqKidFriendly: 0.8, ReqQuiet: 0.5},
	"Saizeriya":   {ReqParking: 0.4, ReqKidFriendly: 0.7, ReqQuiet: 0.4},
	"Burger King": {ReqParking: 0.4, ReqWiFi: 0.6, ReqKidFriendly: 0.7},
	"Subway":      {ReqParking: 0.3, ReqWiFi: 0.5, ReqLongStay: 0.4},
	"Papa John's": {ReqParking: 0.4, ReqKidFriendly: 0.7, ReqPrivateRoom: 0.2},
	"Domino's":    {ReqParking: 0.3, ReqKidFriendly: 0.6},
	"Dairy Queen": {ReqKidFriendly: 0.9, ReqParking: 0.4},
	"Häagen-Dazs": {ReqKidFriendly: 0.7, ReqQuiet: 0.6, ReqLongStay: 0.5},

	// Tea and drinks.
	"Heytea":   {ReqQuiet: 0.4, ReqLongStay: 0.5, ReqParking: 0.3},
	"Nayuki":   {ReqQuiet: 0.5, ReqLongStay: 0.6, ReqParking: 0.4, ReqWiFi: 0.6},
	"ChaPanda": {ReqQuiet: 0.3, ReqLongStay: 0.3, ReqParking: 0.2},
	"Mixue":    {ReqQuiet: 0.2, ReqLongStay: 0.2, ReqParking: 0.2},
	"Sexy Tea": {ReqQuiet: 0.4, ReqLongStay: 0.4, ReqParking: 0.3},
	"Guming":   {ReqQuiet: 0.3, ReqLongStay: 0.3, ReqParking: 0.2},
	"CoCo":     {ReqQuiet: 0.3, ReqLongStay: 0.3, ReqParking: 0.2},
}

// brandOrder fixes the lookup order; only the first brand found in a venue
// name contributes.
var brandOrder = []string{
	"Starbucks", "Luckin", "Costa", "Maan Coffee", "Pacific Coffee",
	"Manner", "Seesaw", "M Stand", "Tims", "UBC Coffee", "Zoo Coffee",
	"Kafelaku", "Peet's", "NOWWA",
	"Haidilao", "Xibei", "Grandma's", "Green Tea", "Xiaolongkan",
	"Xiabu Xiabu", "Dalongyi", "Meizhou Dongpo", "Quanjude", "Da Dong",
	"Din Tai Fung", "Nanjing Impressions", "Jiumaojiu", "Tai Er",
	"McDonald's", "KFC", "Pizza Hut", "Saizeriya", "Burger King",
	"Subway", "Papa John's", "Domino's", "Dairy Queen", "Häagen-Dazs",
	"Heytea", "Nayuki", "ChaPanda", "Mixue", "Sexy Tea", "Guming", "CoCo",
}

// CategoryDefaults scores requirement satisfaction implied by a venue
// category, applied at low confidence when the strength is at least
// categoryThreshold. Kept separate from BrandFeatures: categories match the
// venue's type string, brands match its name.
var CategoryDefaults = map[string]map[string]float64{
	"library":           {ReqQuiet: 1.0, ReqWiFi: 0.9, ReqLongStay: 1.0},
	"bookstore":         {ReqQuiet: 1.0, ReqLongStay: 0.8, ReqWiFi: 0.5},
	"mall":              {ReqParking: 0.9, ReqTransit: 0.8, ReqKidFriendly: 0.7},
	"hotel":             {ReqQuiet: 0.9, ReqBusiness: 0.9, ReqParking: 0.8, ReqWiFi: 0.9, ReqPrivateRoom: 0.8},
	"cinema":            {ReqParking: 0.7, ReqKidFriendly: 0.6},
	"karaoke":           {ReqPrivateRoom: 1.0, ReqParking: 0.6, Req24Hours: 0.5},
	"gym":               {ReqParking: 0.6, ReqWiFi: 0.5},
	"internet cafe":     {ReqWiFi: 1.0, Req24Hours: 0.8, ReqLongStay: 0.9},
	"convenience store": {Req24Hours: 0.9},
}

// categoryOrder fixes the lookup order; only the first category found in a
// venue's type or name contributes.
var categoryOrder = []string{
	"library", "bookstore", "mall", "hotel", "cinema", "karaoke",
	"gym", "internet cafe", "convenience store",
}
