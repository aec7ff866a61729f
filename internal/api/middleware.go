package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cleared-dev/ratios/internal/auth"
)

const (
	sessionCookie = "session"
	sessionLocal  = "session"
)

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	entry := s.opts.Logger.Info()
	if status >= fiber.StatusInternalServerError && err != nil {
		entry = s.opts.Logger.Error().Err(err)
	}
	entry.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	return nil
}

// requireSession accepts a bearer token or the session cookie.
func (s *Server) requireSession(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "login required")
	}
	sess, ok := s.opts.Auth.Lookup(token)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "session expired")
	}
	c.Locals(sessionLocal, sess)
	return c.Next()
}

func sessionToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(sessionCookie)
}

func currentSession(c *fiber.Ctx) auth.Session {
	sess, _ := c.Locals(sessionLocal).(auth.Session)
	return sess
}
