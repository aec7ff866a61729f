package api

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/cleared-dev/ratios/internal/analysis"
	"github.com/cleared-dev/ratios/internal/auth"
	"github.com/cleared-dev/ratios/internal/buildinfo"
	"github.com/cleared-dev/ratios/internal/ratio"
	"github.com/cleared-dev/ratios/internal/report"
	"github.com/cleared-dev/ratios/internal/statement"
)

// Multipart field names of the two statements.
const (
	fieldBalance = "balance"
	fieldIncome  = "income"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type panelGroup struct {
	Name  ratio.GroupName `json:"name"`
	Worst string          `json:"worst"`
	Rows  []report.Row    `json:"rows"`
}

// RatiosResponse is the body of POST /api/ratios.
type RatiosResponse struct {
	ID      string         `json:"id"`
	Rows    []report.Row   `json:"rows"`
	Panel   []panelGroup   `json:"panel"`
	Charts  []report.Chart `json:"charts"`
	Missing []string       `json:"missing"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid login body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "username and password are required")
	}

	sess, err := s.opts.Auth.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrRateLimited):
		s.opts.Logger.Warn().Str("user", req.Username).Msg("login rate limited")
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.opts.Logger.Warn().Str("user", req.Username).Msg("login failed")
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case err != nil:
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(sess)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	s.opts.Auth.Logout(currentSession(c).Token)
	c.ClearCookie(sessionCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleRatios(c *fiber.Ctx) error {
	res, err := s.analyze(c)
	if err != nil {
		return err
	}

	panel := make([]panelGroup, 0, len(res.Panel))
	for _, g := range res.Panel {
		panel = append(panel, panelGroup{
			Name:  g.Name,
			Worst: report.BandLabel(g.Worst),
			Rows:  report.BuildRows(g.Results),
		})
	}
	return c.JSON(RatiosResponse{
		ID:      res.ID,
		Rows:    res.Rows,
		Panel:   panel,
		Charts:  res.Charts,
		Missing: res.Missing,
	})
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	format := c.Query("format", s.opts.DefaultFormat)
	exp := s.opts.Exporters.Get(format)
	if exp == nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown export format %q", format))
	}

	res, err := s.analyze(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, res.Rows); err != nil {
		return fmt.Errorf("exporting %s: %w", exp.Format(), err)
	}
	c.Attachment(report.FileName(s.opts.ExportFileName, exp))
	c.Set(fiber.HeaderContentType, exp.ContentType())
	return c.Send(buf.Bytes())
}

// analyze runs the uploaded statement pair through the analysis service.
func (s *Server) analyze(c *fiber.Ctx) (*analysis.Result, error) {
	balance, err := c.FormFile(fieldBalance)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing balance sheet upload")
	}
	income, err := c.FormFile(fieldIncome)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing income statement upload")
	}

	format := statement.FormatFromFilename(balance.Filename)
	if format == "" {
		format = "xlsx"
	}

	b, err := openUpload(balance)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	i, err := openUpload(income)
	if err != nil {
		return nil, err
	}
	defer i.Close()

	res, err := s.opts.Analysis.Analyze(c.UserContext(), format, b, i)
	var merr *statement.MalformedDocumentError
	switch {
	case errors.As(err, &merr):
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, merr.Error())
	case errors.Is(err, analysis.ErrUnknownFormat):
		return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
	case err != nil:
		return nil, err
	}
	return res, nil
}

func openUpload(fh *multipart.FileHeader) (multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	return f, nil
}
