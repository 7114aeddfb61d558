package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dslh/lodestar-mcp/internal/gateway"
	"github.com/dslh/lodestar-mcp/internal/tools"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 5 * time.Second

// Dispatcher is the operation router the server fronts
type Dispatcher interface {
	ListOperations() []tools.Operation
	Invoke(ctx context.Context, name string, args map[string]any) tools.Envelope
	SessionStatus() gateway.Status
}

// Server is the HTTP proxy front-end over the tool dispatcher
type Server struct {
	router     *gin.Engine
	addr       string
	dispatcher Dispatcher
}

// NewServer creates a server listening on addr. Stdout may carry the MCP
// stdio stream, so gin runs in release mode unless GIN_MODE says otherwise
// and all of its output goes to stderr.
func NewServer(addr string, d Dispatcher) *Server {
	if os.Getenv(gin.EnvGinMode) == "" && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = os.Stderr

	router := gin.New()
	router.Use(requestID())
	router.Use(recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    os.Stderr,
		Formatter: accessLog,
	}))

	s := &Server{
		router:     router,
		addr:       addr,
		dispatcher: d,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP proxy listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("Shutting down HTTP proxy...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "lodestar"})
	})

	api := s.router.Group("/api/v1")
	{
		api.GET("/tools", s.handleListTools())
		api.POST("/tools/:name", s.handleInvoke())
		api.GET("/session", s.handleSessionStatus())
	}
}

func (s *Server) handleListTools() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tools": s.dispatcher.ListOperations()})
	}
}

func (s *Server) handleSessionStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.dispatcher.SessionStatus())
	}
}

func (s *Server) handleInvoke() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")

		args, err := decodeArgs(c.Request.Body)
		if err != nil {
			env := tools.Fail(tools.KindValidation, fmt.Sprintf("Invalid arguments for %s: %v", name, err))
			c.JSON(http.StatusBadRequest, env)
			return
		}

		env := s.dispatcher.Invoke(c.Request.Context(), name, args)
		c.JSON(StatusFor(env), env)
	}
}

// decodeArgs reads a JSON object body; an empty body means no arguments
func decodeArgs(body io.Reader) (map[string]any, error) {
	args := map[string]any{}
	if body == nil {
		return args, nil
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(&args); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// StatusFor maps an envelope to the HTTP status returned with it
func StatusFor(env tools.Envelope) int {
	if env.OK {
		return http.StatusOK
	}
	if env.Error == nil {
		return http.StatusInternalServerError
	}

	kind := env.Error.Kind
	if kind == tools.KindExecution && env.Error.Cause != "" {
		kind = env.Error.Cause
	}
	switch kind {
	case tools.KindValidation:
		return http.StatusBadRequest
	case tools.KindAuthentication:
		return http.StatusUnauthorized
	case tools.KindUnknownOperation:
		return http.StatusNotFound
	case tools.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func accessLog(p gin.LogFormatterParams) string {
	id, _ := p.Keys[requestIDKey].(string)
	return fmt.Sprintf("[HTTP] %s | %3d | %13v | %s %q | %s\n",
		p.TimeStamp.Format(time.RFC3339), p.StatusCode, p.Latency, p.Method, p.Path, id)
}

const requestIDKey = "request_id"

// requestID echoes the caller's request ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// recovery turns a handler panic into an ExecutionError envelope
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s (request %s): %v",
					c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), r)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					tools.Fail(tools.KindExecution, "Tool execution failed: internal server error"))
			}
		}()
		c.Next()
	}
}
