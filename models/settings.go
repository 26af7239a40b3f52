package models

import "time"

// SalonSettings is a tenant-scoped singleton record.
type SalonSettings struct {
	Name               string    `json:"name"`
	Motto              string    `json:"motto"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	BookingOpenDays    int       `json:"bookingOpenDays"`
	RewardThreshold    float64   `json:"rewardThreshold"`
	RewardDiscountPct  float64   `json:"rewardDiscountPct"`
	RewardValidityDays int       `json:"rewardValidityDays"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ThemeSettings is the tenant's color palette, also singleton-like.
type ThemeSettings struct {
	PrimaryColor    string    `json:"primaryColor"`
	SecondaryColor  string    `json:"secondaryColor"`
	AccentColor     string    `json:"accentColor"`
	BackgroundColor string    `json:"backgroundColor"`
	FontFamily      string    `json:"fontFamily"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func DefaultSalonSettings(name string) SalonSettings {
	return SalonSettings{
		Name:               name,
		BookingOpenDays:    30,
		RewardThreshold:    1000,
		RewardDiscountPct:  10,
		RewardValidityDays: 30,
		UpdatedAt:          time.Now(),
	}
}

func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:    "#7c3aed",
		SecondaryColor:  "#a78bfa",
		AccentColor:     "#f59e0b",
		BackgroundColor: "#faf5ff",
		FontFamily:      "Inter",
		UpdatedAt:       time.Now(),
	}
}
