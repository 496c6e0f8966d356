package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openharvest/bargain/internal/domain"
)

// CategoryRepository interface for category data access
type CategoryRepository interface {
	// GetByName retrieves a category by exact canonical name.
	// Returns ErrCategoryNotFound when no row matches.
	GetByName(ctx context.Context, name string) (*domain.Category, error)
}

// ProductRepository interface for product data access
type ProductRepository interface {
	// Create inserts a new product row
	Create(ctx context.Context, product *domain.Product) error

	// ListByCategory retrieves all products in a category in the store's
	// natural return order
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
}

// PhotoRepository interface for product detail photo data access
type PhotoRepository interface {
	// Create inserts a new detail photo row
	Create(ctx context.Context, photo *domain.ProductPhoto) error

	// ListByProduct retrieves all detail photos owned by a product
	ListByProduct(ctx context.Context, productID int64) ([]domain.ProductPhoto, error)
}

// GormCategoryRepository is the GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrCategoryNotFound, "name %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query category")
	}
	return &category, nil
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Find(&products).Error
	return products, err
}

// GormPhotoRepository is the GORM implementation of PhotoRepository
type GormPhotoRepository struct {
	db *gorm.DB
}

func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

func (r *GormPhotoRepository) Create(ctx context.Context, photo *domain.ProductPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *GormPhotoRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.ProductPhoto, error) {
	var photos []domain.ProductPhoto
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&photos).Error
	return photos, err
}
