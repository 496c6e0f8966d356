package webapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/openharvest/bargain/config"
	"github.com/openharvest/bargain/internal/accounts"
	"github.com/openharvest/bargain/internal/catalog"
	"github.com/openharvest/bargain/internal/domain"
	"github.com/openharvest/bargain/internal/storage"
)

// ProductService is the catalog surface the web layer consumes.
type ProductService interface {
	ListByCategory(ctx context.Context, name string) ([]catalog.ProductView, error)
	Register(ctx context.Context, req catalog.RegisterRequest, cover *storage.Upload, detailPhotos []*storage.Upload) catalog.Result
}

// UserService is the accounts surface the web layer consumes.
type UserService interface {
	CheckEmailDuplicate(ctx context.Context, email string) (string, error)
	CheckNicknameDuplicate(ctx context.Context, nickname string) (string, error)
	Join(ctx context.Context, req accounts.JoinRequest, photo *storage.Upload) string
	Login(ctx context.Context, email, password string) accounts.LoginResult
	ValidateToken(token string) bool
	GetLoginUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// WebServer serves the public HTTP API and the two static image trees.
type WebServer struct {
	cfg      *config.AppConfig
	root     *echo.Echo
	products ProductService
	users    UserService
}

func NewWebServer(cfg *config.AppConfig, products ProductService, users UserService) *WebServer {
	s := &WebServer{
		cfg:      cfg,
		root:     echo.New(),
		products: products,
		users:    users,
	}
	s.root.HideBanner = true
	s.root.Validator = &payloadValidator{validate: validator.New()}
	s.root.Use(middleware.Recover())
	s.root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	s.initRoutes()
	return s
}

func (s *WebServer) initRoutes() {
	// stored images are served under the same paths the view urls use
	s.root.Static("/products/images", s.cfg.Uploads.ProductImageDir)
	s.root.Static("/productcomment/images", s.cfg.Uploads.CommentImageDir)
	s.root.Static("/users/images", s.cfg.Uploads.ProfileImageDir)

	s.root.GET("/products", s.listProducts)
	s.root.POST("/products", s.createProduct)

	s.root.GET("/check-email", s.checkEmailDuplicate)
	s.root.GET("/check-nickname", s.checkNicknameDuplicate)
	s.root.GET("/check-login", s.checkLogin)
	s.root.POST("/join", s.join)
	s.root.POST("/login", s.login)
	s.root.POST("/logout", s.logout)

	s.root.GET("/info", s.userInfo, echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.cfg.Web.JwtSecret),
	}))
}

// Start blocks serving HTTP until the server stops.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("Starting web server %s", addr)
	return s.root.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// openUpload converts a multipart file header to a service-layer upload.
// The returned closer must be closed after the service call returns.
func openUpload(fh *multipart.FileHeader) (*storage.Upload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &storage.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	}, f, nil
}
