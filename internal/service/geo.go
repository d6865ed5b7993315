package service

import (
	"math"

	"github.com/urbanfix/backend/internal/models"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers. Symmetric, zero for coincident points, safe at antipodes.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(radians(lat1))*math.Cos(radians(lat2))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func KmToMeters(km float64) float64 {
	return km * 1000
}

// NearestDepartment selects the department closest to the given point.
// The first department in input order wins distance ties. An empty
// directory is a fatal precondition failure for allocation.
func NearestDepartment(lat, lon float64, departments []models.Department) (models.Department, float64, error) {
	if len(departments) == 0 {
		return models.Department{}, 0, ErrNoDepartments
	}
	best := departments[0]
	bestDist := HaversineKm(lat, lon, best.Latitude, best.Longitude)
	for _, d := range departments[1:] {
		if dist := HaversineKm(lat, lon, d.Latitude, d.Longitude); dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best, bestDist, nil
}
