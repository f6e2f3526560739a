package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_category_user_name" json:"user_id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_category_user_name" json:"name"`
	Color     string    `gorm:"size:7" json:"color"`
	Icon      string    `gorm:"size:50" json:"icon"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
