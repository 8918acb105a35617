package domain

import "time"

// Catalog visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Catalog represents a named, owned, visibility-scoped collection of items
// (catalogs table)
type Catalog struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name          string    `gorm:"column:name;size:200;index" json:"name"`
	Description   string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ImageURL      string    `gorm:"column:image_url;size:500" json:"image_url,omitempty"`
	Visibility    string    `gorm:"column:visibility;size:20;default:public;index" json:"visibility"`
	OwnerID       string    `gorm:"column:owner_id;size:36;index" json:"owner_id"`
	BookmarkCount int       `gorm:"column:bookmark_count;default:0" json:"bookmark_count"`
	ClickCount    int       `gorm:"column:click_count;default:0" json:"click_count"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	Owner *Profile `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Catalog) TableName() string {
	return "catalogs"
}

// CatalogResult is a catalog row in search/browse responses
type CatalogResult struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	ImageURL      string       `json:"image_url,omitempty"`
	BookmarkCount int          `json:"bookmark_count"`
	ItemCount     int          `json:"item_count"`
	Owner         ProfileOwner `json:"owner"`
	IsBookmarked  bool         `json:"is_bookmarked"`
}

// CatalogDetail is a catalog with its items, returned by the detail endpoint
type CatalogDetail struct {
	CatalogResult
	Items []ItemResult `json:"items"`
}
