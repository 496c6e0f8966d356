package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharvest/bargain/config"
	"github.com/openharvest/bargain/internal/accounts"
	"github.com/openharvest/bargain/internal/catalog"
	"github.com/openharvest/bargain/internal/domain"
	"github.com/openharvest/bargain/internal/storage"
)

const testSecret = "webapi-test-secret"

type stubProducts struct {
	views     []catalog.ProductView
	listErr   error
	gotName   string
	gotReq    catalog.RegisterRequest
	gotCover  *storage.Upload
	gotDetail []*storage.Upload
	result    catalog.Result
}

func (s *stubProducts) ListByCategory(_ context.Context, name string) ([]catalog.ProductView, error) {
	s.gotName = name
	return s.views, s.listErr
}

func (s *stubProducts) Register(_ context.Context, req catalog.RegisterRequest, cover *storage.Upload, detail []*storage.Upload) catalog.Result {
	s.gotReq = req
	s.gotCover = cover
	s.gotDetail = detail
	return s.result
}

type stubUsers struct {
	emailMsg    string
	nicknameMsg string
	joinMsg     string
	gotJoin     accounts.JoinRequest
	gotPhoto    *storage.Upload
	loginResult accounts.LoginResult
	tokens      *accounts.TokenIssuer
	user        *domain.User
	userErr     error
}

func (s *stubUsers) CheckEmailDuplicate(_ context.Context, _ string) (string, error) {
	return s.emailMsg, nil
}

func (s *stubUsers) CheckNicknameDuplicate(_ context.Context, _ string) (string, error) {
	return s.nicknameMsg, nil
}

func (s *stubUsers) Join(_ context.Context, req accounts.JoinRequest, photo *storage.Upload) string {
	s.gotJoin = req
	s.gotPhoto = photo
	return s.joinMsg
}

func (s *stubUsers) Login(_ context.Context, _, _ string) accounts.LoginResult {
	return s.loginResult
}

func (s *stubUsers) ValidateToken(token string) bool {
	return s.tokens.Validate(token)
}

func (s *stubUsers) GetLoginUserByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.userErr
}

func newTestServer(t *testing.T) (*WebServer, *stubProducts, *stubUsers) {
	t.Helper()
	dir := t.TempDir()
	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = dir
	cfg.Web.JwtSecret = testSecret
	cfg.Uploads.ProductImageDir = dir
	cfg.Uploads.CommentImageDir = dir
	cfg.Uploads.ProfileImageDir = dir

	products := &stubProducts{result: catalog.Result{Status: true, Message: "ok"}}
	users := &stubUsers{
		emailMsg:    accounts.MsgEmailAvailable,
		nicknameMsg: accounts.MsgNicknameAvailable,
		joinMsg:     accounts.MsgJoinOK,
		tokens:      accounts.NewTokenIssuer(testSecret, time.Hour),
	}
	return NewWebServer(cfg, products, users), products, users
}

func TestListProductsEndpoint(t *testing.T) {
	server, products, _ := newTestServer(t)
	products.views = []catalog.ProductView{{ID: 7, Name: "apple"}}

	req := httptest.NewRequest(http.MethodGet, "/products?category=fruits", nil)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fruits", products.gotName)

	var views []catalog.ProductView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "apple", views[0].Name)
}

func TestListProductsRequiresCategory(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			fw, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = fw.Write([]byte("image-bytes"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateProductMultipart(t *testing.T) {
	server, products, _ := newTestServer(t)

	body, contentType := multipartBody(t,
		map[string]string{
			"name":      "apple",
			"price":     "1200",
			"inventory": "30",
			"comment":   "fresh",
			"category":  catalog.LabelFruits,
		},
		map[string][]string{
			"photo":        {"cover.jpg"},
			"commentphoto": {"d1.jpg", "d2.jpg"},
		},
	)

	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "apple", products.gotReq.Name)
	assert.Equal(t, int64(1200), products.gotReq.Price)
	assert.Equal(t, catalog.LabelFruits, products.gotReq.CategoryLabel)
	require.NotNil(t, products.gotCover)
	assert.Equal(t, "cover.jpg", products.gotCover.Filename)
	assert.Len(t, products.gotDetail, 2)

	var result catalog.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Status)
}

func TestCreateProductRejectsMissingName(t *testing.T) {
	server, _, _ := newTestServer(t)
	body, contentType := multipartBody(t,
		map[string]string{"category": catalog.LabelFruits},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckEmailEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/check-email?email=a@b.kr", nil)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accounts.MsgEmailAvailable, rec.Body.String())
}

func TestJoinEndpoint(t *testing.T) {
	server, _, users := newTestServer(t)
	body, contentType := multipartBody(t,
		map[string]string{
			"email":    "harvest@bargainus.kr",
			"nickname": "farmer",
			"password": "secret-password",
		},
		map[string][]string{"photo": {"me.png"}},
	)
	req := httptest.NewRequest(http.MethodPost, "/join", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accounts.MsgJoinOK, rec.Body.String())
	assert.Equal(t, "harvest@bargainus.kr", users.gotJoin.Email)
	require.NotNil(t, users.gotPhoto)
	assert.Equal(t, "me.png", users.gotPhoto.Filename)
}

func TestLoginEndpoint(t *testing.T) {
	server, _, users := newTestServer(t)
	users.loginResult = accounts.LoginResult{Status: true, Message: accounts.MsgLoginOK, Token: "tok"}

	form := url.Values{"email": {"a@b.kr"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result accounts.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Status)
	assert.Equal(t, "tok", result.Token)
}

func TestCheckLoginEndpoint(t *testing.T) {
	server, _, users := newTestServer(t)
	token, err := users.tokens.Issue(&domain.User{Email: "a@b.kr", Nickname: "farmer"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/check-login", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":true`)

	req = httptest.NewRequest(http.MethodGet, "/check-login", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec = httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":false`)
}

func TestUserInfoEndpoint(t *testing.T) {
	server, _, users := newTestServer(t)
	users.user = &domain.User{Email: "a@b.kr", Nickname: "farmer"}
	token, err := users.tokens.Issue(users.user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "email: a@b.kr")
	assert.Contains(t, rec.Body.String(), "nickname: farmer")
}

func TestUserInfoRequiresToken(t *testing.T) {
	server, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	server.root.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

