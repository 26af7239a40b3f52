package models

import "time"

// DaySchedule is one weekday of a staff member's working hours.
type DaySchedule struct {
	Open      string `json:"open"`
	Close     string `json:"close"`
	Available bool   `json:"available"`
}

type StaffMember struct {
	ID                string                 `json:"id"`
	FullName          string                 `json:"fullName"`
	Phone             string                 `json:"phone"`
	Email             string                 `json:"email"`
	Specialties       []string               `json:"specialties"`
	Schedule          map[string]DaySchedule `json:"schedule"`
	Rating            float64                `json:"rating"`
	CompletedServices int                    `json:"completedServices"`
	State             Lifecycle              `json:"state"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// DefaultStaffSchedule gives a new staff member the salon's standard week.
func DefaultStaffSchedule() map[string]DaySchedule {
	sched := make(map[string]DaySchedule, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		sched[day] = DaySchedule{Open: "09:00", Close: "19:00", Available: true}
	}
	sched["sunday"] = DaySchedule{Available: false}
	return sched
}
