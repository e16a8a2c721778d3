package models

import "time"

// AIConfig stores a user's AI provider selection. There is exactly one
// configuration per user; saving again replaces the previous one.
type AIConfig struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Provider  string    `bson:"provider" json:"provider"`
	Model     string    `bson:"model" json:"model"`
	APIKey    string    `bson:"api_key" json:"-"` // opaque secret, never serialized
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
