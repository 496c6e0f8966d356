package catalog

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/openharvest/bargain/internal/domain"
	"github.com/openharvest/bargain/internal/storage"
)

const (
	msgRegisterOK   = "product registered successfully"
	msgRegisterFail = "product registration failed"
)

// Result is the caller-facing outcome of a write operation. Specific failure
// causes stay in the logs; callers only see the generic message.
type Result struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// RegisterRequest carries the plain form fields of a product registration.
// CategoryLabel is the Korean label as submitted, translated before lookup.
type RegisterRequest struct {
	Name          string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Price         int64  `json:"price" form:"price" validate:"min=0"`
	Inventory     int    `json:"inventory" form:"inventory" validate:"min=0"`
	Comment       string `json:"comment" form:"comment"`
	CategoryLabel string `json:"category" form:"category" validate:"required"`
}

// Config holds the directory and url settings the service needs.
type Config struct {
	ProductImageDir string
	CommentImageDir string
	PublicBaseURL   string
}

// Service implements product listing and registration over the category,
// product and photo repositories plus a blob store.
type Service struct {
	categories CategoryRepository
	products   ProductRepository
	photos     PhotoRepository
	store      storage.BlobStore
	cfg        Config
}

func NewService(
	categories CategoryRepository,
	products ProductRepository,
	photos PhotoRepository,
	store storage.BlobStore,
	cfg Config,
) *Service {
	return &Service{
		categories: categories,
		products:   products,
		photos:     photos,
		store:      store,
		cfg:        cfg,
	}
}

// ListByCategory returns the view projection of every product in the named
// category. An unknown category yields an empty list, not an error.
func (s *Service) ListByCategory(ctx context.Context, name string) ([]ProductView, error) {
	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return []ProductView{}, nil
		}
		return nil, err
	}

	products, err := s.products.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		photos, err := s.photos.ListByProduct(ctx, product.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "list photos for product %d", product.ID)
		}
		views = append(views, newProductView(product, category.Name, photos, s.cfg.PublicBaseURL))
	}
	return views, nil
}

// writtenFile records one blob written during a registration so it can be
// unwound when a later step fails.
type writtenFile struct {
	dir  string
	name string
}

// Register runs the product registration workflow: optional cover photo
// write, category translation and lookup, product row insert, detail photo
// writes with one row each, then a photo re-fetch. Every file written this
// call goes onto a compensation list that is unwound in reverse order when
// any step fails, so a failed registration leaves no files behind.
func (s *Service) Register(ctx context.Context, req RegisterRequest, cover *storage.Upload, detailPhotos []*storage.Upload) Result {
	var written []writtenFile

	failed := func(cause error) Result {
		zap.L().Error("product registration failed",
			zap.String("name", req.Name),
			zap.String("category", req.CategoryLabel),
			zap.Error(cause))
		s.unwind(written)
		return Result{Status: false, Message: msgRegisterFail}
	}

	coverName := ""
	if !cover.IsEmpty() {
		coverName = storage.GenerateFilename(cover.Filename)
		if err := s.store.Write(s.cfg.ProductImageDir, coverName, cover.Content); err != nil {
			return failed(err)
		}
		written = append(written, writtenFile{s.cfg.ProductImageDir, coverName})
	}

	// Category resolution happens after the cover write but before any row
	// is inserted, so a miss needs only file cleanup.
	canonical, err := CanonicalCategoryName(req.CategoryLabel)
	if err != nil {
		return failed(err)
	}
	category, err := s.categories.GetByName(ctx, canonical)
	if err != nil {
		return failed(err)
	}

	product := &domain.Product{
		CategoryID: category.ID,
		Name:       req.Name,
		Price:      req.Price,
		Inventory:  req.Inventory,
		Comment:    req.Comment,
		Photo:      coverName,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return failed(errors.Wrap(err, "create product"))
	}

	detailCount := 0
	for _, upload := range detailPhotos {
		if upload.IsEmpty() {
			continue
		}
		detailCount++
		name := storage.GenerateFilename(upload.Filename)
		if err := s.store.Write(s.cfg.CommentImageDir, name, upload.Content); err != nil {
			return failed(err)
		}
		written = append(written, writtenFile{s.cfg.CommentImageDir, name})
		if err := s.photos.Create(ctx, &domain.ProductPhoto{
			ProductID: product.ID,
			Filename:  name,
		}); err != nil {
			return failed(errors.Wrap(err, "create product photo"))
		}
	}

	if _, err := s.photos.ListByProduct(ctx, product.ID); err != nil {
		return failed(errors.Wrap(err, "reload product photos"))
	}

	zap.L().Info("product registered",
		zap.Int64("product_id", product.ID),
		zap.String("category", canonical),
		zap.Int("detail_photos", detailCount))
	return Result{Status: true, Message: msgRegisterOK}
}

// unwind removes files written during a failed registration in reverse
// order. Removal is best-effort; a failure is logged, never escalated.
func (s *Service) unwind(written []writtenFile) {
	for i := len(written) - 1; i >= 0; i-- {
		f := written[i]
		if err := s.store.Remove(f.dir, f.name); err != nil {
			zap.L().Warn("failed to remove orphaned upload",
				zap.String("dir", f.dir),
				zap.String("file", f.name),
				zap.Error(err))
		}
	}
}
