package web

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wichananm65/spaceship-store/internal/logkey"
)

const (
	sessionLocal = "session"
	flashKey     = "flash"

	// FlashLocal is the view binding holding the one-shot message.
	FlashLocal = "Flash"
)

// NewSessionStore configures cookie sessions. A nil storage keeps sessions in
// process memory.
func NewSessionStore(storage fiber.Storage, ttl time.Duration) *session.Store {
	return session.New(session.Config{
		Expiration:     ttl,
		Storage:        storage,
		KeyLookup:      "cookie:store_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// statelessPrefixes never touch the session store.
var statelessPrefixes = []string{"/api/", "/metrics", "/healthz", "/css/", "/images/"}

// Sessions loads the caller's session before the handler runs and saves it
// afterwards. On GET requests the pending flash message is moved into the
// view locals so the rendered page shows it once. A failed save on any other
// method fails the request, since the change it carried was lost.
func Sessions(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isStateless(c.Path()) {
			return c.Next()
		}
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		c.Locals(sessionLocal, sess)
		if c.Method() == fiber.MethodGet {
			if msg := TakeFlash(sess); msg != "" {
				c.Locals(FlashLocal, msg)
			}
		}

		err = c.Next()
		if saveErr := sess.Save(); saveErr != nil {
			slog.Error("failed to save session",
				slog.String(logkey.Path, c.Path()),
				slog.String(logkey.Error, saveErr.Error()))
			if err == nil && c.Method() != fiber.MethodGet {
				c.Response().Header.Del(fiber.HeaderLocation)
				return fmt.Errorf("failed to save session: %w", saveErr)
			}
		}
		return err
	}
}

func isStateless(path string) bool {
	for _, p := range statelessPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Session returns the session loaded by Sessions, or nil on stateless paths.
func Session(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}

// SetFlash stores a message shown on the next rendered page.
func SetFlash(sess *session.Session, msg string) {
	sess.Set(flashKey, msg)
}

// TakeFlash returns and clears the pending message.
func TakeFlash(sess *session.Session) string {
	msg, _ := sess.Get(flashKey).(string)
	if msg != "" {
		sess.Delete(flashKey)
	}
	return msg
}

// RedirectWithFlash sets msg and redirects with 302.
func RedirectWithFlash(c *fiber.Ctx, location, msg string) error {
	SetFlash(Session(c), msg)
	return c.Redirect(location, fiber.StatusFound)
}
