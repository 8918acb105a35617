package domain

import "time"

// Item represents a single discoverable product record belonging to exactly
// one catalog (items table)
type Item struct {
	ID         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Title      string    `gorm:"column:title;size:300;index" json:"title"`
	ImageURL   string    `gorm:"column:image_url;size:500" json:"image_url"`
	ProductURL string    `gorm:"column:product_url;size:500" json:"product_url,omitempty"`
	Price      string    `gorm:"column:price;size:50" json:"price,omitempty"`
	Seller     string    `gorm:"column:seller;size:200" json:"seller,omitempty"`
	CatalogID  string    `gorm:"column:catalog_id;size:36;index" json:"catalog_id"`
	LikeCount  int       `gorm:"column:like_count;default:0" json:"like_count"`
	ClickCount int       `gorm:"column:click_count;default:0" json:"click_count"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	Catalog *Catalog `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Item) TableName() string {
	return "items"
}

// ItemResult is an item row in search/browse responses, denormalized with
// its catalog name and owner username
type ItemResult struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ImageURL      string `json:"image_url"`
	ProductURL    string `json:"product_url,omitempty"`
	Price         string `json:"price,omitempty"`
	Seller        string `json:"seller,omitempty"`
	CatalogID     string `json:"catalog_id"`
	CatalogName   string `json:"catalog_name"`
	OwnerUsername string `json:"owner_username"`
	LikeCount     int    `json:"like_count"`
	IsLiked       bool   `json:"is_liked"`
}
