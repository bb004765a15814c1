package track

import "math"

// EarthRadius is the mean earth radius in meters.
const EarthRadius = 6371e3

// Distance returns the great-circle distance between two samples in meters,
// using the haversine formula.
func Distance(a, b Sample) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat1 - lat2
	dLon := (a.Longitude - b.Longitude) * math.Pi / 180

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// Speed returns the average speed between two samples in meters per second.
// Samples sharing a timestamp have a speed of 0.
func Speed(a, b Sample) float64 {
	if a.Timestamp == b.Timestamp {
		return 0
	}
	dt := a.Timestamp - b.Timestamp
	if dt < 0 {
		dt = -dt
	}
	return Distance(a, b) / float64(dt)
}

// SpeedKMH returns Speed in kilometers per hour.
func SpeedKMH(a, b Sample) float64 {
	return 3.6 * Speed(a, b)
}
