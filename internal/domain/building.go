package domain

import (
	"github.com/google/uuid"

	"github.com/org-directory/internal/pkg/geo"
)

// Building - здание с почтовым адресом и координатами
type Building struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Address   string    `json:"address" db:"address"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
}

func (b *Building) Point() geo.Point {
	return geo.Point{Lat: b.Latitude, Lon: b.Longitude}
}
