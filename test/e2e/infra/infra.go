package infra

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	v1 "github.com/kubev2v/handoff/api/v1"
	"github.com/kubev2v/handoff/internal/config"
	"github.com/kubev2v/handoff/internal/handlers"
	"github.com/kubev2v/handoff/internal/metrics"
	"github.com/kubev2v/handoff/internal/server"
	"github.com/kubev2v/handoff/internal/services"
)

// Stack is a complete handoff instance (controller, host loop and HTTP API)
// listening on a random local port.
type Stack struct {
	cfg        *config.Configuration
	controller *services.Controller
	http       *httptest.Server
	cancel     context.CancelFunc
	hostDone   chan error
}

// StartStack boots a stack with cfg. Auth is honoured when cfg.Auth.Enabled.
func StartStack(cfg *config.Configuration) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := metrics.NewMetrics()
	ctrl, err := services.NewController(cfg.Worker, cfg.Work, m)
	if err != nil {
		return nil, err
	}

	h := handlers.New(ctrl, cfg.Work.Contains, cfg.Server.SubmitRate, cfg.Server.SubmitBurst)
	srv, err := server.NewServer(cfg, m.Handler(), func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Stack{
		cfg:        cfg,
		controller: ctrl,
		http:       httptest.NewServer(srv.Handler()),
		cancel:     cancel,
		hostDone:   make(chan error, 1),
	}

	host := services.NewHost(ctrl, cfg.Worker.TickInterval, cfg.Worker.ShutdownTimeout)
	go func() { s.hostDone <- host.Run(ctx) }()

	return s, nil
}

func (s *Stack) URL() string {
	return s.http.URL
}

// Stop ends the host loop, which shuts the controller down, then closes the listener.
func (s *Stack) Stop() error {
	s.cancel()
	defer s.http.Close()

	select {
	case err := <-s.hostDone:
		return err
	case <-time.After(s.cfg.Worker.ShutdownTimeout + time.Second):
		return errors.New("host did not stop in time")
	}
}

// GenerateToken signs an HS256 token for subject with the stack's secret.
func (s *Stack) GenerateToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

// Metrics scrapes /metrics.
func (s *Stack) Metrics() (*http.Response, error) {
	return http.Get(s.http.URL + "/metrics")
}
