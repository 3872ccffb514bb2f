package geo

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters - средний радиус Земли в метрах
const EarthRadiusMeters = 6371000.0

// Point - любая сущность, у которой есть широта и долгота в градусах
type Point interface {
	LatLng() (lat, lon float64)
}

// Distance возвращает расстояние по большому кругу между двумя точками в метрах (формула гаверсинусов).
// Результат симметричен и неотрицателен; Distance(a, a) == 0.
func Distance(a, b Point) float64 {
	lat1, lon1 := a.LatLng()
	lat2, lon2 := b.LatLng()
	return DistanceDegrees(lat1, lon1, lat2, lon2)
}

// DistanceDegrees - то же, что Distance, но для сырых координат
func DistanceDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	d := p1.Distance(p2).Radians() * EarthRadiusMeters
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	return d
}

// ValidLatLng проверяет, что координаты лежат в допустимых диапазонах
func ValidLatLng(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// SortByDistance сортирует точки по возрастанию расстояния до origin.
// Точки на одинаковом расстоянии сохраняют исходный порядок.
func SortByDistance[T Point](origin Point, points []T) []T {
	type ranked struct {
		point    T
		distance float64
	}
	items := make([]ranked, len(points))
	for i, p := range points {
		items[i] = ranked{point: p, distance: Distance(origin, p)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].distance < items[j].distance
	})

	result := make([]T, len(items))
	for i, item := range items {
		result[i] = item.point
	}
	return result
}
