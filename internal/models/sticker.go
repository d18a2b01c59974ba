package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sticker is a shop catalog entry stored in MongoDB
type Sticker struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	ImageURL string             `json:"image_url" bson:"image_url"`
	Price    int                `json:"price" bson:"price"`
}

// StickerPurchase records a user's ownership of a sticker (PostgreSQL).
// StickerID is the catalog entry's Mongo ObjectID in hex.
type StickerPurchase struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_sticker_purchases_user_sticker"`
	StickerID string    `json:"sticker_id" gorm:"size:24;uniqueIndex:idx_sticker_purchases_user_sticker"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
