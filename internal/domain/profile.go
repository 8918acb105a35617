package domain

import "time"

// Profile represents a registered user (profiles table)
type Profile struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Username    string    `gorm:"column:username;uniqueIndex;size:50" json:"username"`
	DisplayName string    `gorm:"column:display_name;size:100" json:"display_name,omitempty"`
	AvatarURL   string    `gorm:"column:avatar_url;size:500" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileResult is a profile row in search/browse responses.
// Catalog and item counts cover public catalogs only.
type ProfileResult struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	CatalogCount int    `json:"catalog_count"`
	ItemCount    int    `json:"item_count"`
}

// ProfileOwner is the denormalized owner attached to catalog responses
type ProfileOwner struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}
