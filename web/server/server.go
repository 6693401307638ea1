package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("server")

// consoleLimit is the number of console messages kept for the browser
const consoleLimit = 200

// Server exposes a single background render loop over HTTP
type Server struct {
	echo    *echo.Echo
	console *Console

	mu      sync.Mutex
	loop    *renderer.Loop
	request RenderRequest
}

// NewServer creates a new web server with its routes registered
func NewServer() *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	s := &Server{
		echo:    e,
		console: NewConsole(consoleLimit, logger),
	}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/status", s.handleStatus)
	e.GET("/api/image.png", s.handleImage)
	e.GET("/api/inspect", s.handleInspect)
	e.GET("/api/console", s.handleConsole)
	e.POST("/api/render/start", s.handleStart)
	e.POST("/api/render/stop", s.handleStop)

	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	logger.Noticef("starting web server on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the current render and the HTTP listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopLoop()
	return s.echo.Shutdown(ctx)
}

// currentLoop returns the active loop and the request that created it
func (s *Server) currentLoop() (*renderer.Loop, RenderRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop, s.request
}

// replaceLoop installs loop as the current render and returns the one it replaced
func (s *Server) replaceLoop(loop *renderer.Loop, req RenderRequest) (*renderer.Loop, RenderRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, previousReq := s.loop, s.request
	s.loop, s.request = loop, req
	return previous, previousReq
}

func (s *Server) stopLoop() {
	if loop, _ := s.currentLoop(); loop != nil {
		loop.Stop()
	}
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(c echo.Context, status int, err error) error {
	return c.JSON(status, errorResponse{Error: err.Error()})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleConsole returns the recent render events
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Messages())
}
