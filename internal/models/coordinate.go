package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate - выборка геопозиции, полученная с устройства пользователя
type Coordinate struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	CapturedAt     time.Time `json:"captured_at"`
}

func (c Coordinate) LatLng() (float64, float64) {
	return c.Latitude, c.Longitude
}

// GymLocation - точка зала, против которой проверяется выборка
type GymLocation struct {
	ID        uuid.UUID `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

func (g GymLocation) LatLng() (float64, float64) {
	return g.Latitude, g.Longitude
}

// Gym - запись каталога залов
type Gym struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func (g *Gym) Location() GymLocation {
	return GymLocation{ID: g.ID, Latitude: g.Latitude, Longitude: g.Longitude}
}

func (g *Gym) LatLng() (float64, float64) {
	return g.Latitude, g.Longitude
}
