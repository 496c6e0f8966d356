package webapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/openharvest/bargain/internal/accounts"
	"github.com/openharvest/bargain/internal/storage"
)

func (s *WebServer) checkEmailDuplicate(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "email is required", nil)
	}
	msg, err := s.users.CheckEmailDuplicate(c.Request().Context(), email)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check email", err.Error())
	}
	return c.String(http.StatusOK, msg)
}

func (s *WebServer) checkNicknameDuplicate(c echo.Context) error {
	nickname := strings.TrimSpace(c.QueryParam("nickname"))
	if nickname == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "nickname is required", nil)
	}
	msg, err := s.users.CheckNicknameDuplicate(c.Request().Context(), nickname)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check nickname", err.Error())
	}
	return c.String(http.StatusOK, msg)
}

// checkLogin probes the Authorization header token without side effects.
func (s *WebServer) checkLogin(c echo.Context) error {
	token := c.Request().Header.Get(echo.HeaderAuthorization)
	if s.users.ValidateToken(token) {
		return ok(c, echo.Map{"status": true, "message": "token is valid"})
	}
	return ok(c, echo.Map{"status": false, "message": "token is invalid"})
}

// join registers a new account from a multipart form with an optional
// "photo" profile image.
func (s *WebServer) join(c echo.Context) error {
	var req accounts.JoinRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var photo *storage.Upload
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		upload, closer, err := openUpload(fh)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read profile photo", err.Error())
		}
		defer closer.Close()
		photo = upload
	}

	msg := s.users.Join(c.Request().Context(), req, photo)
	return c.String(http.StatusOK, msg)
}

func (s *WebServer) login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required", nil)
	}
	result := s.users.Login(c.Request().Context(), email, password)
	return ok(c, result)
}

// logout is stateless: the bearer token simply stops being presented.
func (s *WebServer) logout(c echo.Context) error {
	return ok(c, echo.Map{"status": true, "message": accounts.MsgLogoutOK})
}

// userInfo summarizes the authenticated account. The jwt middleware has
// already verified the token by the time this runs.
func (s *WebServer) userInfo(c echo.Context) error {
	token, tok := c.Get("user").(*jwt.Token)
	if !tok {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing token", nil)
	}
	claims, cok := token.Claims.(jwt.MapClaims)
	if !cok {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token claims", nil)
	}
	email, _ := claims["sub"].(string)

	user, err := s.users.GetLoginUserByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	return c.String(http.StatusOK, fmt.Sprintf("email: %s\nnickname: %s", user.Email, user.Nickname))
}
