package domain

// DictionaryItem - enumeration member with the label shown to users.
type DictionaryItem struct {
	SystemName  string
	DisplayName string
}

// Dictionaries - every closed enumeration a client needs to render filters.
type Dictionaries struct {
	PropertyTypes []DictionaryItem
	Amenities     []DictionaryItem
	Highlights    []DictionaryItem
}

var propertyTypeLabels = map[PropertyType]string{
	PropertyTypeRoom:          "Phòng trọ",
	PropertyTypeMiniApartment: "Căn hộ mini",
	PropertyTypeHouse:         "Nhà nguyên căn",
	PropertyTypeApartment:     "Chung cư",
	PropertyTypeDormitory:     "Ký túc xá",
	PropertyTypeSleepbox:      "Sleepbox",
}

var amenityLabels = map[Amenity]string{
	AmenityDishwasher:        "Máy rửa chén",
	AmenityHighSpeedInternet: "Internet tốc độ cao",
	AmenityHardwoodFloors:    "Sàn gỗ",
	AmenityWalkInClosets:     "Tủ quần áo rộng",
	AmenityMicrowave:         "Lò vi sóng",
	AmenityRefrigerator:      "Tủ lạnh",
	AmenityPool:              "Hồ bơi",
	AmenityGym:               "Phòng tập thể dục",
	AmenityParking:           "Bãi đỗ xe",
	AmenityPetsAllowed:       "Cho phép thú cưng",
	AmenityWiFi:              "Wi-Fi",
}

var highlightLabels = map[Highlight]string{
	HighlightHighSpeedInternetAccess: "Truy cập Internet tốc độ cao",
	HighlightWasherDryer:             "Máy giặt và máy sấy",
	HighlightAirConditioning:         "Điều hòa không khí",
	HighlightHeating:                 "Hệ thống sưởi",
	HighlightSmokeFree:               "Khu vực không hút thuốc",
	HighlightCableReady:              "Sẵn sàng truyền hình cáp",
	HighlightSatelliteTV:             "Truyền hình vệ tinh",
	HighlightDoubleVanities:          "Bồn rửa đôi",
	HighlightTubShower:               "Bồn tắm & vòi sen",
	HighlightIntercom:                "Hệ thống liên lạc nội bộ",
	HighlightSprinklerSystem:         "Hệ thống phun nước chữa cháy",
	HighlightRecentlyRenovated:       "Mới được cải tạo",
	HighlightCloseToTransit:          "Gần phương tiện công cộng",
	HighlightGreatView:               "Tầm nhìn đẹp",
	HighlightQuietNeighborhood:       "Khu dân cư yên tĩnh",
}

// BuildDictionaries lists the enumerations in declaration order.
func BuildDictionaries() Dictionaries {
	var d Dictionaries
	for _, pt := range propertyTypes {
		d.PropertyTypes = append(d.PropertyTypes, item(string(pt), propertyTypeLabels[pt]))
	}
	for _, a := range amenities {
		d.Amenities = append(d.Amenities, item(string(a), amenityLabels[a]))
	}
	for _, h := range highlights {
		d.Highlights = append(d.Highlights, item(string(h), highlightLabels[h]))
	}
	return d
}

func item(systemName, label string) DictionaryItem {
	if label == "" {
		label = systemName // Fallback
	}
	return DictionaryItem{SystemName: systemName, DisplayName: label}
}
