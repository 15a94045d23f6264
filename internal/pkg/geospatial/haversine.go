package geospatial

import (
	"math"
	"strconv"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// FormatDistance renders meters as "850 m" or "3.2 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return strconv.Itoa(int(math.Round(meters))) + " m"
	}
	return strconv.FormatFloat(meters/1000, 'f', 1, 64) + " km"
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
