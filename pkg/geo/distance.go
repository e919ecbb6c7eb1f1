package geo

import "math"

// EarthRadiusKm средний радиус Земли
const EarthRadiusKm = 6371.0

// Point географическая точка в градусах
type Point struct {
	Lat float64
	Lng float64
}

// Distance расстояние по дуге большого круга между двумя точками (формула гаверсинусов), км
func Distance(from, to Point) float64 {
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(from.Lat))*math.Cos(toRadians(to.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// IsValid координаты в допустимых диапазонах
func (p Point) IsValid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
