package domain

import "time"

// PropertyType - kind of rentable property, stored as the property_type enum.
type PropertyType string

const (
	PropertyTypeRoom          PropertyType = "ROOM"
	PropertyTypeMiniApartment PropertyType = "MINI_APARTMENT"
	PropertyTypeHouse         PropertyType = "HOUSE"
	PropertyTypeApartment     PropertyType = "APARTMENT"
	PropertyTypeDormitory     PropertyType = "DORMITORY"
	PropertyTypeSleepbox      PropertyType = "SLEEPBOX"
)

var propertyTypes = []PropertyType{
	PropertyTypeRoom,
	PropertyTypeMiniApartment,
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeDormitory,
	PropertyTypeSleepbox,
}

// PropertyTypes returns every member of the enumeration in declaration order.
func PropertyTypes() []PropertyType {
	return append([]PropertyType(nil), propertyTypes...)
}

func (t PropertyType) Valid() bool {
	for _, known := range propertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Amenity - member of the closed amenity enumeration.
type Amenity string

const (
	AmenityDishwasher        Amenity = "Dishwasher"
	AmenityHighSpeedInternet Amenity = "HighSpeedInternet"
	AmenityHardwoodFloors    Amenity = "HardwoodFloors"
	AmenityWalkInClosets     Amenity = "WalkInClosets"
	AmenityMicrowave         Amenity = "Microwave"
	AmenityRefrigerator      Amenity = "Refrigerator"
	AmenityPool              Amenity = "Pool"
	AmenityGym               Amenity = "Gym"
	AmenityParking           Amenity = "Parking"
	AmenityPetsAllowed       Amenity = "PetsAllowed"
	AmenityWiFi              Amenity = "WiFi"
)

var amenities = []Amenity{
	AmenityDishwasher,
	AmenityHighSpeedInternet,
	AmenityHardwoodFloors,
	AmenityWalkInClosets,
	AmenityMicrowave,
	AmenityRefrigerator,
	AmenityPool,
	AmenityGym,
	AmenityParking,
	AmenityPetsAllowed,
	AmenityWiFi,
}

func Amenities() []Amenity {
	return append([]Amenity(nil), amenities...)
}

func (a Amenity) Valid() bool {
	for _, known := range amenities {
		if a == known {
			return true
		}
	}
	return false
}

// Highlight - member of the closed highlight enumeration.
type Highlight string

const (
	HighlightHighSpeedInternetAccess Highlight = "HighSpeedInternetAccess"
	HighlightWasherDryer             Highlight = "WasherDryer"
	HighlightAirConditioning         Highlight = "AirConditioning"
	HighlightHeating                 Highlight = "Heating"
	HighlightSmokeFree               Highlight = "SmokeFree"
	HighlightCableReady              Highlight = "CableReady"
	HighlightSatelliteTV             Highlight = "SatelliteTV"
	HighlightDoubleVanities          Highlight = "DoubleVanities"
	HighlightTubShower               Highlight = "TubShower"
	HighlightIntercom                Highlight = "Intercom"
	HighlightSprinklerSystem         Highlight = "SprinklerSystem"
	HighlightRecentlyRenovated       Highlight = "RecentlyRenovated"
	HighlightCloseToTransit          Highlight = "CloseToTransit"
	HighlightGreatView               Highlight = "GreatView"
	HighlightQuietNeighborhood       Highlight = "QuietNeighborhood"
)

var highlights = []Highlight{
	HighlightHighSpeedInternetAccess,
	HighlightWasherDryer,
	HighlightAirConditioning,
	HighlightHeating,
	HighlightSmokeFree,
	HighlightCableReady,
	HighlightSatelliteTV,
	HighlightDoubleVanities,
	HighlightTubShower,
	HighlightIntercom,
	HighlightSprinklerSystem,
	HighlightRecentlyRenovated,
	HighlightCloseToTransit,
	HighlightGreatView,
	HighlightQuietNeighborhood,
}

func Highlights() []Highlight {
	return append([]Highlight(nil), highlights...)
}

// Location - geocoded address of a listing. Latitude/Longitude are 0,0 when geocoding failed.
type Location struct {
	ID         int64
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
	Latitude   float64
	Longitude  float64
}

// Listing - a rentable property record with its single location.
type Listing struct {
	ID                int64
	Name              string
	Description       string
	PricePerMonth     float64
	SecurityDeposit   float64
	ApplicationFee    float64
	Beds              int
	Baths             float64
	SquareFeet        int
	PropertyType      PropertyType
	Amenities         []Amenity
	Highlights        []Highlight
	IsPetsAllowed     bool
	IsParkingIncluded bool
	PhotoURLs         []string
	ManagerID         string
	LocationID        int64
	PostedDate        time.Time

	Location Location
}

// Lease - occupancy of a listing between StartDate and EndDate.
type Lease struct {
	ID        int64
	ListingID int64
	TenantID  string
	StartDate time.Time
	EndDate   time.Time
	Rent      float64
	Deposit   float64
}

// ListingDetails - one listing with its location and every lease on it.
type ListingDetails struct {
	Listing ListingRecord
	Leases  []Lease
}
