package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openharvest/bargain/internal/catalog"
	"github.com/openharvest/bargain/internal/storage"
)

// listProducts returns every product in the named canonical category. An
// unknown category yields an empty list, not an error.
func (s *WebServer) listProducts(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("category"))
	if name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "category is required", nil)
	}

	views, err := s.products.ListByCategory(c.Request().Context(), name)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, views)
}

// createProduct handles the multipart registration form: plain fields plus an
// optional "photo" cover image and any number of "commentphoto" detail
// images. The workflow outcome always comes back as {status, message}.
func (s *WebServer) createProduct(c echo.Context) error {
	var req catalog.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var cover *storage.Upload
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		upload, closer, err := openUpload(fh)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read cover photo", err.Error())
		}
		defer closer.Close()
		cover = upload
	}

	var detail []*storage.Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["commentphoto"] {
			upload, closer, err := openUpload(fh)
			if err != nil {
				return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read detail photo", err.Error())
			}
			defer closer.Close()
			detail = append(detail, upload)
		}
	}

	result := s.products.Register(c.Request().Context(), req, cover, detail)
	return ok(c, result)
}
