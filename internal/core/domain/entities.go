package domain

import "time"

// Role represents identity role in the system
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleVolunteer Role = "volunteer"
	RoleUser      Role = "user"
)

// VolunteerStatus is the activation state of a volunteer identity
type VolunteerStatus string

const (
	VolunteerStatusNone     VolunteerStatus = "none"
	VolunteerStatusPending  VolunteerStatus = "pending"
	VolunteerStatusApproved VolunteerStatus = "approved"
	VolunteerStatusRejected VolunteerStatus = "rejected"
)

// NotificationPreferences holds the per-channel notification switches
type NotificationPreferences struct {
	Email   bool `json:"email" yaml:"email"`
	Browser bool `json:"browser" yaml:"browser"`
}

// Identity is the authenticated subject held by a session
type Identity struct {
	ID                      string                  `json:"id" yaml:"id" validate:"required"`
	Username                string                  `json:"username" yaml:"username" validate:"required"`
	Email                   string                  `json:"email" yaml:"email" validate:"required,email"`
	Role                    Role                    `json:"role" yaml:"role" validate:"oneof=admin volunteer user"`
	VolunteerStatus         VolunteerStatus         `json:"volunteerStatus" yaml:"volunteerStatus" validate:"oneof=none pending approved rejected"`
	Badges                  []string                `json:"badges" yaml:"badges"`
	Bio                     string                  `json:"bio" yaml:"bio"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences" yaml:"notificationPreferences"`
}

// Clone returns a copy that shares no slices with the receiver
func (i Identity) Clone() Identity {
	if i.Badges != nil {
		badges := make([]string, len(i.Badges))
		copy(badges, i.Badges)
		i.Badges = badges
	}
	return i
}

// IsVolunteer reports whether the identity has the volunteer role
func (i Identity) IsVolunteer() bool {
	return i.Role == RoleVolunteer
}

// ReportCondition is the triage level of a reported animal
type ReportCondition string

const (
	ConditionCritical ReportCondition = "critical"
	ConditionModerate ReportCondition = "moderate"
	ConditionMild     ReportCondition = "mild"
)

// ReportStatus is the lifecycle state of a field report
type ReportStatus string

const (
	StatusSubmitted  ReportStatus = "submitted"
	StatusInProgress ReportStatus = "in-progress"
	StatusCompleted  ReportStatus = "completed"
)

// Report represents a field incident record
type Report struct {
	ID          string          `json:"id" yaml:"id" validate:"required"`
	UserID      string          `json:"userId" yaml:"userId" validate:"required"`
	AnimalType  string          `json:"animalType" yaml:"animalType" validate:"required"`
	Description string          `json:"description" yaml:"description"`
	Location    string          `json:"location" yaml:"location"`
	PhotoURL    string          `json:"photoUrl" yaml:"photoUrl"`
	Condition   ReportCondition `json:"condition" yaml:"condition" validate:"oneof=critical moderate mild"`
	Status      ReportStatus    `json:"status" yaml:"status" validate:"oneof=submitted in-progress completed"`
	AssignedTo  *string         `json:"assignedTo" yaml:"assignedTo"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"createdAt"`
}

// IsAssignedTo reports whether the report is assigned to the given identity id
func (r Report) IsAssignedTo(identityID string) bool {
	return r.AssignedTo != nil && *r.AssignedTo == identityID
}
