package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/papercomputeco/casegen/pkg/session"
)

// SessionCookie holds the caller's session id.
const SessionCookie = "casegen_session"

const (
	sessionIDKey  = "casegen.session.id"
	sessionLogKey = "casegen.session.log"
)

// withSession resolves the caller's session from its cookie, issuing a new
// id when the cookie is missing or malformed, and stores the log in Locals.
func (s *Server) withSession(c *fiber.Ctx) error {
	id := utils.CopyString(c.Cookies(SessionCookie))
	if !session.ValidID(id) {
		id = session.NewID()
	}

	log := s.store.GetOrCreate(c.UserContext(), id)

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.config.SessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionIDKey, id)
	c.Locals(sessionLogKey, log)

	return c.Next()
}

func sessionID(c *fiber.Ctx) string {
	return c.Locals(sessionIDKey).(string)
}

func sessionLog(c *fiber.Ctx) *session.Log {
	return c.Locals(sessionLogKey).(*session.Log)
}
