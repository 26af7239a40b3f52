package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	BusinessTypeSalon      = "salon"
	BusinessTypeBarbershop = "barbershop"
	BusinessTypeSpa        = "spa"
	BusinessTypeNails      = "nails"
)

// Tenant is one business sharing the deployment. Tenants and their owners are
// the only records stored under global (un-scoped) keys.
type Tenant struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	BusinessType string    `json:"businessType"`
	OwnerID      string    `json:"ownerId"`
	Branding     Branding  `json:"branding"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail string    `json:"contactEmail"`
	Address      string    `json:"address"`
	Plan         string    `json:"plan"`
	PlanStatus   string    `json:"planStatus"`
	PlanExpiry   time.Time `json:"planExpiry"`
	Timezone     string    `json:"timezone"`
	Currency     string    `json:"currency"`
	Locale       string    `json:"locale"`
	WorkingHours JSONB     `json:"workingHours"`
	State        Lifecycle `json:"state"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Branding struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoText       string `json:"logoText"`
}

// TenantOwner holds the hashed credential and the list of tenants the person
// owns (many-to-many via OwnedTenantIDs).
type TenantOwner struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"-"`
	OwnedTenantIDs []string  `json:"ownedTenantIds"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	State          Lifecycle `json:"state"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Custom JSONB type for working hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}

// DefaultWorkingHours mirrors what registration seeds when the owner does not
// supply a schedule.
func DefaultWorkingHours() JSONB {
	return JSONB{
		"monday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"tuesday":   map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"wednesday": map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"thursday":  map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"friday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"saturday":  map[string]interface{}{"open": "09:00", "close": "21:00", "closed": false},
		"sunday":    map[string]interface{}{"open": "10:00", "close": "19:00", "closed": true},
	}
}
