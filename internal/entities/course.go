package entities

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);index;not null" json:"owner_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CareerID    uint      `gorm:"index;not null" json:"career_id"`
	Career      *Career   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) OwnerID() uuid.UUID {
	return c.UserID
}

// CourseSummary is a course together with its rating aggregates.
// It is filled by an explicit join, never by lazy association loading.
type CourseSummary struct {
	Course
	RatingCount   int64   `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
}
