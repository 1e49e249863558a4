package models

import "time"

// GiftStatus tracks a gift idea through its lifecycle
type GiftStatus string

const (
	GiftIdea      GiftStatus = "IDEA"
	GiftPurchased GiftStatus = "PURCHASED"
	GiftGiven     GiftStatus = "GIVEN"
)

// GiftItem is a gift idea, optionally attached to an event
type GiftItem struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	EventID   *uint      `gorm:"index" json:"event_id,omitempty"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Price     int        `gorm:"not null;default:0" json:"price"`
	URL       string     `gorm:"size:500" json:"url"`
	Category  string     `gorm:"size:50" json:"category"`
	Status    GiftStatus `gorm:"size:20;not null;default:IDEA" json:"status"`
	Memo      string     `gorm:"size:1000" json:"memo"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the GiftItem model
func (GiftItem) TableName() string {
	return "gift_item"
}

// GiftItemRequest represents the data needed to create or update a gift item
type GiftItemRequest struct {
	EventID  *uint      `json:"event_id"`
	Name     string     `json:"name" binding:"required,max=200"`
	Price    int        `json:"price" binding:"min=0"`
	URL      string     `json:"url" binding:"max=500"`
	Category string     `json:"category" binding:"max=50"`
	Status   GiftStatus `json:"status" binding:"omitempty,oneof=IDEA PURCHASED GIVEN"`
	Memo     string     `json:"memo" binding:"max=1000"`
}
