package domain

import "time"

// Like is a viewer's saved reference to an item (likes table)
type Like struct {
	ItemID    string    `gorm:"column:item_id;primaryKey;size:36" json:"item_id"`
	ProfileID string    `gorm:"column:profile_id;primaryKey;size:36;index" json:"profile_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Item    *Item    `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	Profile *Profile `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

// Bookmark is a viewer's saved reference to a catalog (bookmarks table)
type Bookmark struct {
	CatalogID string    `gorm:"column:catalog_id;primaryKey;size:36" json:"catalog_id"`
	ProfileID string    `gorm:"column:profile_id;primaryKey;size:36;index" json:"profile_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Catalog *Catalog `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE" json:"-"`
	Profile *Profile `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// LikeStatus is the authoritative post-commit state returned by a like toggle
type LikeStatus struct {
	ItemID    string `json:"item_id"`
	LikeCount int    `json:"like_count"`
	Liked     bool   `json:"liked"`
}

// BookmarkStatus is the authoritative post-commit state returned by a
// bookmark toggle
type BookmarkStatus struct {
	CatalogID     string `json:"catalog_id"`
	BookmarkCount int    `json:"bookmark_count"`
	Bookmarked    bool   `json:"bookmarked"`
}

// ClickResult is returned by the click-tracking endpoint
type ClickResult struct {
	Success    bool `json:"success"`
	ClickCount int  `json:"click_count"`
}
