// Package server provides the HTTP server for handoff.
//
// The server uses the Gin web framework. It serves the work API under /api/v1
// and Prometheus metrics under /metrics.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server :8000                     │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (request/response logging)                      │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────┬───────────────────────────────┤
//	│  /metrics                     │  /api/v1                      │
//	│  promhttp, never authenticated│  Authenticator (optional)     │
//	│                               │  Handlers (via callback)      │
//	└───────────────────────────────┴───────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - Gin runs in debug mode
//
// Production Mode (ServerMode = "prod"):
//   - Gin runs in release mode
//
// # Middleware
//
// Logger Middleware (middlewares.Logger):
//   - Logs request start at debug level: method, path, query, IP, user-agent, timestamp
//   - Logs request end: all above + status code, latency
//   - Errors logged separately if present
//   - Uses zap structured logging with "http" logger name
//
// Recovery Middleware (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// Authenticator Middleware (middlewares.Authenticator), when Auth.Enabled:
//   - Requires "Authorization: Bearer <jwt>"
//   - Accepts HS256 only, signed with Auth.JWTSecret
//   - Requires an expiry claim
//   - Stores the token subject in the gin context as "subject"
//   - Returns 401 Unauthorized otherwise
//
// # Usage Example
//
//	srv, err := server.NewServer(cfg, m.Handler(), func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    if err := srv.Start(ctx); err != http.ErrServerClosed {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	srv.Stop(shutdownCtx)
package server
