package catalog

import (
	"time"

	"github.com/openharvest/bargain/internal/domain"
)

// ProductView is the presentation projection of a product. Stored rows keep
// bare filenames; only the view carries fully qualified retrieval urls, so a
// persisted record is never contaminated with a presentation-layer url.
type ProductView struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Price     int64       `json:"price"`
	Inventory int         `json:"inventory"`
	Comment   string      `json:"comment"`
	Category  string      `json:"category"`
	Photo     string      `json:"photo"`
	Photos    []PhotoView `json:"photos"`
	CreatedAt time.Time   `json:"created_at"`
}

// PhotoView is the presentation projection of a detail photo.
type PhotoView struct {
	ID       int64  `json:"id"`
	PhotoURL string `json:"photo_url"`
}

const (
	productImagePath = "/products/images/"
	commentImagePath = "/productcomment/images/"
)

// newProductView projects a product and its detail photos to retrieval urls
// under baseURL. A product without a cover photo projects to an empty string,
// not a bare base path.
func newProductView(p domain.Product, categoryName string, photos []domain.ProductPhoto, baseURL string) ProductView {
	view := ProductView{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Inventory: p.Inventory,
		Comment:   p.Comment,
		Category:  categoryName,
		Photos:    make([]PhotoView, 0, len(photos)),
		CreatedAt: p.CreatedAt,
	}
	if p.Photo != "" {
		view.Photo = baseURL + productImagePath + p.Photo
	}
	for _, photo := range photos {
		view.Photos = append(view.Photos, PhotoView{
			ID:       photo.ID,
			PhotoURL: baseURL + commentImagePath + photo.Filename,
		})
	}
	return view
}
