package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/blakemt/pufflog/pkg/tracklog"
)

// Session is one recorded consumption session, normalized for storage.
type Session struct {
	ID               string // UUID
	Date             string // yyyy-mm-dd
	Time             string // HH:mm, 24h
	Location         string
	Latitude         *float64
	Longitude        *float64
	WhoWith          string
	Vessel           string // normalized category name
	AccessoryUsed    string
	MyVessel         bool
	MySubstance      bool
	StrainName       string
	StrainType       string
	THCPercent       *float64 // 0-100, nil when unknown
	PurchasedLegally bool
	StatePurchased   string
	Tobacco          bool
	Kief             bool
	Concentrate      bool
	Lavender         bool
	Quantity         tracklog.QuantityValue
	Comments         string
	CreatedAt        time.Time
}

// Validate checks the fields storage requires.
func (s *Session) Validate() error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Date == "" {
		return errors.New("date is required")
	}
	if s.Vessel == "" {
		return errors.New("vessel is required")
	}
	return nil
}

// Category returns the session's vessel category.
func (s *Session) Category() tracklog.VesselCategory {
	return tracklog.CategoryFromString(s.Vessel)
}

// NormalizeID carries over a source identifier when it is already a valid
// UUID and generates a fresh one otherwise. Never returns an empty string.
func NormalizeID(raw string) string {
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
