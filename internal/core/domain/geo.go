package domain

import "math"

const earthRadiusKm = 6371.0088

// DistanceKm - great-circle distance between two points (haversine).
func DistanceKm(a, b GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Within reports whether p lies inside the radius (boundary included).
func (r GeoRadius) Within(p GeoPoint) bool {
	return DistanceKm(r.Center, p) <= r.RadiusKm
}
