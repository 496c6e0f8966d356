package domain

import "time"

// Product is a catalog item. Photo holds the stored cover image filename
// only, never a URL; empty means no cover image was uploaded.
type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64     `gorm:"index;not null" json:"category_id"`
	Name       string    `gorm:"size:200;index" json:"name" form:"name"`
	Price      int64     `json:"price" form:"price"`
	Inventory  int       `json:"inventory" form:"inventory"`
	Comment    string    `gorm:"type:text" json:"comment" form:"comment"`
	Photo      string    `gorm:"size:255" json:"photo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// ProductPhoto is a supplementary detail image owned by exactly one product.
// Rows are created only as a side effect of product registration.
type ProductPhoto struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"index;not null" json:"product_id"`
	Filename  string    `gorm:"size:255" json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ProductPhoto) TableName() string {
	return "product_photos"
}
