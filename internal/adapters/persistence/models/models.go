package models

import (
	"time"

	"resqall/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Field reports
// ============================================================

// Report represents reports table
type Report struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      string    `gorm:"index;size:64;not null" json:"user_id"`
	AnimalType  string    `gorm:"size:50;not null" json:"animal_type"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	PhotoURL    string    `gorm:"size:500" json:"photo_url"`
	Condition   string    `gorm:"size:20;not null" json:"condition"`
	Status      string    `gorm:"size:20;index;not null" json:"status"`
	AssignedTo  *string   `gorm:"index;size:64" json:"assigned_to"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}

// ToDomain converts the row to a domain report
func (r *Report) ToDomain() domain.Report {
	var assignedTo *string
	if r.AssignedTo != nil {
		id := *r.AssignedTo
		assignedTo = &id
	}

	return domain.Report{
		ID:          r.ID,
		UserID:      r.UserID,
		AnimalType:  r.AnimalType,
		Description: r.Description,
		Location:    r.Location,
		PhotoURL:    r.PhotoURL,
		Condition:   domain.ReportCondition(r.Condition),
		Status:      domain.ReportStatus(r.Status),
		AssignedTo:  assignedTo,
		CreatedAt:   r.CreatedAt,
	}
}

// ReportFromDomain converts a domain report to a row
func ReportFromDomain(d domain.Report) *Report {
	var assignedTo *string
	if d.AssignedTo != nil {
		id := *d.AssignedTo
		assignedTo = &id
	}

	return &Report{
		ID:          d.ID,
		UserID:      d.UserID,
		AnimalType:  d.AnimalType,
		Description: d.Description,
		Location:    d.Location,
		PhotoURL:    d.PhotoURL,
		Condition:   string(d.Condition),
		Status:      string(d.Status),
		AssignedTo:  assignedTo,
		CreatedAt:   d.CreatedAt,
	}
}

// AutoMigrate runs auto migration for application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Report{},
	)
}
