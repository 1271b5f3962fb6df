package handler

import (
	"errors"
	"fmt"
	"time"

	"go-shakti-admin/internal/session"
	"go-shakti-admin/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	store        *session.Store
	auth         session.AuthAPI
	cookieDomain string
	cookieSecure bool
	log          *zap.Logger

	// onLogout lets pages release their per-session controller state.
	onLogout []func(sessionHash string)
}

func NewAuthHandler(store *session.Store, auth session.AuthAPI, cookieDomain string, cookieSecure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, auth: auth, cookieDomain: cookieDomain, cookieSecure: cookieSecure, log: log}
}

// OnLogout registers a cleanup hook run after every logout.
func (h *AuthHandler) OnLogout(fn func(sessionHash string)) {
	h.onLogout = append(h.onLogout, fn)
}

// Login authenticates the operator and writes the session cookie.
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds session.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(creds); len(errs) > 0 {
		first := errs[0]
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		})
	}

	res, err := h.store.Login(c.UserContext(), creds)
	if err != nil {
		if errors.Is(err, session.ErrLoginFailed) {
			// Business rejection: surface the server message and the fresh
			// captcha for the retry.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"outcome": false,
				"message": res.Message,
				"captcha": res.Captcha,
			})
		}
		h.log.Error("login call failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"outcome": false, "message": "something went wrong, please retry"})
	}

	h.writeCookie(c, res.Token, time.Now().Add(session.TTL))

	return c.JSON(fiber.Map{
		"outcome": true,
		"data": fiber.Map{
			"token": res.Token,
			"user":  res.User,
			"menu":  res.Menu,
		},
	})
}

// Logout ends the requester's session everywhere: backend (best effort),
// cache, registry, cookie, and the cross-tab signal.
// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	hash := session.HashToken(token)

	h.store.Logout(c.UserContext(), token)
	h.writeCookie(c, "", time.Now().Add(-time.Hour))

	for _, fn := range h.onLogout {
		fn(hash)
	}

	return c.JSON(fiber.Map{"outcome": true})
}

// Captcha fetches a challenge for the login page.
// GET /auth/captcha
func (h *AuthHandler) Captcha(c *fiber.Ctx) error {
	env, err := h.auth.Captcha(c.UserContext())
	if err != nil {
		h.log.Error("captcha fetch failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"outcome": false, "message": "captcha unavailable"})
	}
	return c.JSON(fiber.Map{"outcome": env.OK(), "data": env.Data, "message": env.Message})
}

// Session reports the current session for the shell: profile, menu, validity.
// GET /session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	if token == "" || !h.store.RestoreFromCookie(token) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"outcome": false, "message": "no active session"})
	}
	return c.JSON(fiber.Map{
		"outcome": true,
		"data": fiber.Map{
			"user": h.store.User(token),
			"menu": h.store.Menu(token),
		},
	})
}

func (h *AuthHandler) writeCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Expires:  expires,
		Domain:   h.cookieDomain,
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
