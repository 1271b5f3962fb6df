package middleware

import (
	"strings"
	"time"

	"go-shakti-admin/internal/repository"
	"go-shakti-admin/internal/session"
	"go-shakti-admin/pkg/apiclient"
	"go-shakti-admin/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireSession re-validates the session on every protected request. Each
// request authenticates itself: the bearer header the shell attaches to XHR
// calls is checked first, the session cookie otherwise. Nothing ambient or
// shared between operators is ever trusted. Tokens revoked in the session
// registry are rejected even before their expiry. The validated token is
// bound to the request context so every backend call goes out under the
// operator who made the request.
func RequireSession(store *session.Store, repo repository.SessionRepository, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(session.CookieName)
		}

		if token == "" || !jwt.IsValid(token) {
			clearSessionCookie(c)
			return reject(c)
		}

		if repo != nil {
			rec, err := repo.FindByTokenHash(session.HashToken(token))
			if err == nil && !rec.Live(time.Now()) {
				log.Info("revoked session rejected", zap.String("user", rec.UserCode))
				store.Discard(token)
				clearSessionCookie(c)
				return reject(c)
			}
		}

		store.RestoreFromCookie(token)
		c.Locals("session_token", token)
		c.SetUserContext(apiclient.WithToken(c.UserContext(), token))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	const prefix = "Bearer "
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, prefix) {
		return strings.TrimPrefix(h, prefix)
	}
	return ""
}

func reject(c *fiber.Ctx) error {
	// Browser navigations bounce to the login page; API calls get a 401 the
	// shell turns into the same redirect.
	if c.Accepts("html", "json") == "html" {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session invalid or expired"})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}

// FrameGuard is the clickjacking defense: framing is refused outright via
// headers, and fetch-metadata-aware browsers get a hard block response when a
// cross-origin frame asks for the console.
func FrameGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("Content-Security-Policy", "frame-ancestors 'self'")
		if c.Get("Sec-Fetch-Dest") == "iframe" && c.Get("Sec-Fetch-Site") == "cross-site" {
			return c.Status(fiber.StatusForbidden).SendString("This console cannot be embedded.")
		}
		return c.Next()
	}
}
