package models

import "strings"

// Location type enumeration. Free-form on the wire but constrained to
// this set by the UI; the server validates but does not reject unknown
// values beyond flagging them.
const (
	TypeAccommodation    = "Accommodation"
	TypeFoodBeverage     = "Food & Beverage"
	TypeCulturalSites    = "Cultural & Historical Sites"
	TypeNatureParks      = "Nature & Parks"
	TypeEntertainment    = "Entertainment & Attractions"
	TypeShoppingMarkets  = "Shopping & Markets"
	TypeAdventureOutdoor = "Adventure & Outdoor Activities"
	TypeHealthWellness   = "Health & Wellness"
	TypeTransportation   = "Transportation"
	TypeEventsFestivals  = "Events & Festivals"
	TypeReligious        = "Religious & Spiritual"
	TypeEducation        = "Education & Research"
	TypeBusiness         = "Business & Professional"
	TypeSports           = "Sports & Recreation"
	TypeAgriculture      = "Agriculture & Farming"
)

var LocationTypes = []string{
	TypeAccommodation,
	TypeFoodBeverage,
	TypeCulturalSites,
	TypeNatureParks,
	TypeEntertainment,
	TypeShoppingMarkets,
	TypeAdventureOutdoor,
	TypeHealthWellness,
	TypeTransportation,
	TypeEventsFestivals,
	TypeReligious,
	TypeEducation,
	TypeBusiness,
	TypeSports,
	TypeAgriculture,
}

// LocationSubtypes is a display lookup keyed on location type. Subtype
// stays a free string on the entities; this table only feeds pickers
// and suggestions and is not enforced server-side.
var LocationSubtypes = map[string][]string{
	TypeAccommodation: {
		"Hotel", "Motel", "Hostel", "Bed & Breakfast",
		"Resort", "Villa", "Cottage", "Lodge", "Capsule Hotel", "Homestay",
	},
	TypeFoodBeverage: {
		"Restaurant", "Cafe", "Bar", "Pub", "Bakery", "Food Truck",
		"Diner", "Tea House", "Wine Bar", "Street Food Stall",
	},
	TypeCulturalSites: {
		"Museum", "Art Gallery", "Historical Monument", "Archaeological Site",
		"Palace", "Castle", "Fort", "Heritage Site", "Ancient Ruins",
	},
	TypeNatureParks: {
		"National Park", "Wildlife Sanctuary", "Botanical Garden", "Beach",
		"Forest Reserve", "Marine Reserve", "Mountain Range", "Desert",
		"Lake", "Waterfall",
	},
	TypeEntertainment: {
		"Amusement Park", "Zoo", "Aquarium", "Theme Park", "Water Park",
		"Casino", "Circus", "Movie Theater", "Planetarium", "Music Venue",
	},
	TypeShoppingMarkets: {
		"Mall", "Local Market", "Flea Market", "Souvenir Shop", "Farmers Market",
		"Supermarket", "Department Store", "Outlet Mall", "Night Market", "Artisanal Market",
	},
	TypeAdventureOutdoor: {
		"Hiking Trail", "Ski Resort", "Surfing Spot", "Diving Site",
		"Rock Climbing Area", "Adventure Park", "Hot Air Balloon Site",
		"Skydiving Center", "Zip Line Park", "Safari Park",
	},
	TypeHealthWellness: {
		"Spa", "Fitness Center", "Yoga Retreat", "Meditation Center",
		"Thermal Baths", "Wellness Retreat", "Health Resort", "Massage Parlor",
		"Detox Center",
	},
	TypeTransportation: {
		"Train Station", "Airport", "Bus Terminal", "Ferry Port",
		"Subway Station", "Tram Stop", "Taxi Stand", "Cable Car Station",
		"Heliport",
	},
	TypeEventsFestivals: {
		"Festival Ground", "Exhibition Hall", "Conference Center",
		"Concert Hall", "Sports Arena", "Convention Center", "Stadium",
		"Fairground", "Opera House", "Open-Air Theater",
	},
	TypeReligious: {
		"Church", "Mosque", "Synagogue", "Temple", "Monastery", "Shrine",
		"Gurdwara", "Pagoda", "Cathedral", "Chapel",
	},
	TypeEducation: {
		"University", "Library", "Research Institute", "Observatory",
		"Science Museum", "Planetarium", "School", "Language Center",
		"Technology Park", "Innovation Hub",
	},
	TypeBusiness: {
		"Office Building", "Co-working Space", "Conference Room",
		"Corporate Headquarters", "Startup Incubator", "Trade Center",
		"Industrial Park", "Business District", "Bank",
	},
	TypeSports: {
		"Sports Complex", "Golf Course", "Tennis Court", "Sports Arena",
		"Skate Park", "Ice Skating Rink", "Bowling Alley", "Gymnasium",
		"Swimming Pool",
	},
	TypeAgriculture: {
		"Vineyard", "Farm", "Orchard", "Ranch", "Plantation", "Dairy Farm",
		"Fishery", "Poultry Farm", "Livestock Farm",
	},
}

func IsValidLocationType(t string) bool {
	if t == "" {
		return true
	}
	for _, known := range LocationTypes {
		if strings.EqualFold(known, t) {
			return true
		}
	}
	return false
}
