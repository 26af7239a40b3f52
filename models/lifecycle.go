package models

// Lifecycle replaces the scattered isActive booleans with a single tagged
// state so catalog and staff rules can be checked exhaustively.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleInactive Lifecycle = "inactive"
	LifecycleDeleted  Lifecycle = "deleted"
)

func (l Lifecycle) IsActive() bool {
	return l == LifecycleActive || l == ""
}
