package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Identity is the account and token boundary used by AuthHandler.
type Identity interface {
	Register(ctx context.Context, in service.AccountInput) (model.Account, error)
	Login(ctx context.Context, username, password string) (service.Tokens, error)
	Refresh(ctx context.Context, raw string) (service.Tokens, error)
	Logout(ctx context.Context, raw string) error
}

// AuthHandler serves the public register, login, refresh and logout routes.
type AuthHandler struct {
	Identity Identity
}

func NewAuthHandler(id Identity) *AuthHandler { return &AuthHandler{Identity: id} }

type accountReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Contact  string `json:"contact"`
}

func (r accountReq) input() service.AccountInput {
	return service.AccountInput{
		Username: strings.TrimSpace(r.Username),
		Password: r.Password,
		FullName: strings.TrimSpace(r.FullName),
		Contact:  strings.TrimSpace(r.Contact),
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResp struct {
	Message          string     `json:"message"`
	Token            string     `json:"token"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RefreshToken     string     `json:"refresh_token"`
	RefreshExpiresAt time.Time  `json:"refresh_expires_at"`
	Username         string     `json:"username"`
	Role             model.Role `json:"role"`
}

func newTokenResp(msg string, t service.Tokens) tokenResp {
	return tokenResp{
		Message:          msg,
		Token:            t.AccessToken.Token,
		ExpiresAt:        t.AccessToken.Exp,
		RefreshToken:     t.RefreshToken.Raw,
		RefreshExpiresAt: t.RefreshToken.Exp,
		Username:         t.Account.Username,
		Role:             t.Account.Role,
	}
}

// Register creates a guest account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req accountReq
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.Identity.Register(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "User registered successfully",
		"username": a.Username,
		"role":     a.Role,
	})
}

// Login verifies credentials and returns an access and refresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	t, err := h.Identity.Login(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTokenResp("Login successful", t))
}

// Refresh rotates the presented refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := bind(c, &req); err != nil {
		return err
	}
	t, err := h.Identity.Refresh(c.Request().Context(), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTokenResp("Token refreshed", t))
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.Identity.Logout(c.Request().Context(), strings.TrimSpace(req.RefreshToken)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
