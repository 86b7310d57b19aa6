package entities

import (
	"time"

	"github.com/google/uuid"
)

type Career struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);index;not null" json:"owner_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Career) TableName() string {
	return "careers"
}

func (c *Career) OwnerID() uuid.UUID {
	return c.UserID
}
