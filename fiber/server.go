// Package fiber provides the HTTP interface to the question answering
// service: the chat endpoint, health reporting, and static chart assets.
package fiber

import (
	"context"

	gofiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/msousa/jango"
)

// Server serves the query API over HTTP.
type Server struct {
	app *gofiber.App

	Addr     string
	Answerer jango.Answerer
	Health   jango.HealthChecker

	// ChartDir, when set, is served statically under /charts.
	ChartDir string
}

// NewServer creates a Server with routing and middleware configured.
func NewServer(answerer jango.Answerer, health jango.HealthChecker, chartDir string) *Server {
	s := &Server{
		app:      gofiber.New(gofiber.Config{DisableStartupMessage: true}),
		Answerer: answerer,
		Health:   health,
		ChartDir: chartDir,
	}

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s.app.Get("/", s.handleInfo)
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/chat", s.handleChat)
	if chartDir != "" {
		s.app.Static("/charts", chartDir)
	}

	return s
}

// Listen starts serving on the configured address.
func (s *Server) Listen(addr string) error {
	s.Addr = addr
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *gofiber.App {
	return s.app
}

// chatRequest is the POST /chat payload.
type chatRequest struct {
	Question string          `json:"question"`
	History  []jango.Message `json:"history,omitempty"`
}

func (s *Server) handleChat(c *gofiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, jango.Errorf(jango.EINVALID, "invalid request body"))
	}

	answer, err := s.Answerer.Answer(c.Context(), &jango.Query{
		Question: req.Question,
		History:  req.History,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(answer)
}

func (s *Server) handleHealth(c *gofiber.Ctx) error {
	return c.JSON(s.Health.CheckHealth(c.Context()))
}

func (s *Server) handleInfo(c *gofiber.Ctx) error {
	return c.JSON(gofiber.Map{
		"service":     "jango",
		"description": "Assistente do setor energético e petrolífero de Angola",
		"endpoints": gofiber.Map{
			"chat":   "POST /chat",
			"health": "GET /health",
			"charts": "GET /charts/:name",
		},
	})
}

// errorResponse writes a well-formed JSON error object for the domain
// error code.
func errorResponse(c *gofiber.Ctx, err error) error {
	code := jango.ErrorCode(err)
	return c.Status(statusFromCode(code)).JSON(gofiber.Map{
		"error": gofiber.Map{
			"code":    code,
			"message": jango.ErrorMessage(err),
		},
	})
}

// statusFromCode maps domain error codes to HTTP statuses.
func statusFromCode(code string) int {
	switch code {
	case jango.EINVALID:
		return gofiber.StatusBadRequest
	case jango.EUNAUTHORIZED:
		return gofiber.StatusUnauthorized
	case jango.ENOTFOUND:
		return gofiber.StatusNotFound
	case jango.ECONFLICT:
		return gofiber.StatusConflict
	case jango.ERATELIMITED:
		return gofiber.StatusTooManyRequests
	case jango.EUNAVAILABLE:
		return gofiber.StatusServiceUnavailable
	default:
		return gofiber.StatusInternalServerError
	}
}
