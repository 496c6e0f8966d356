package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/openharvest/bargain/config"
	"github.com/openharvest/bargain/internal/accounts"
	"github.com/openharvest/bargain/internal/app"
	"github.com/openharvest/bargain/internal/catalog"
	"github.com/openharvest/bargain/internal/storage"
	"github.com/openharvest/bargain/internal/webapi"
)

var (
	cfile      = flag.String("c", "/etc/bargain.yml", "config file")
	initDb     = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showVer    = flag.Bool("v", false, "print version and exit")
	appVersion = "dev"
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("bargaind", appVersion)
		return
	}

	_ = godotenv.Load(".env", "../.env")

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	store := storage.NewDiskStore()
	db := application.DB()

	productService := catalog.NewService(
		catalog.NewGormCategoryRepository(db),
		catalog.NewGormProductRepository(db),
		catalog.NewGormPhotoRepository(db),
		store,
		catalog.Config{
			ProductImageDir: cfg.Uploads.ProductImageDir,
			CommentImageDir: cfg.Uploads.CommentImageDir,
			PublicBaseURL:   cfg.Uploads.PublicBaseURL,
		},
	)

	userService := accounts.NewService(
		accounts.NewGormUserRepository(db),
		store,
		accounts.NewTokenIssuer(cfg.Web.JwtSecret, time.Duration(cfg.Web.TokenTTL)*time.Second),
		cfg.Uploads.ProfileImageDir,
	)

	server := webapi.NewWebServer(cfg, productService, userService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.S().Errorf("web server stopped: %v", err)
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}
