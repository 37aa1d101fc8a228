package backend

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jo-hoe/gocollage/internal/common"
	"github.com/jo-hoe/gocollage/internal/core"
	"github.com/klauspost/compress/gzhttp"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// gzipMinSize is the smallest JSON body worth compressing.
const gzipMinSize = 256

// NewServer creates the echo instance with the middleware stack shared by all routes.
func NewServer(config *core.ServiceConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Registered ahead of the request logger so error responses are written
	// before the compressing writer is closed.
	if config.Compression {
		compression, err := jsonCompression()
		if err != nil {
			return nil, err
		}
		e.Use(compression)
	}

	// Configure request logger to skip the health check
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == PingRoute
		},
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRoutePath: true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"user_agent", v.UserAgent,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				slog.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Info("request", attrs...)
			return nil
		},
	}))

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.AllowedOrigins,
		AllowCredentials: true,
	}))
	if config.MaxBodySize != "" {
		e.Use(middleware.BodyLimit(config.MaxBodySize))
	}

	e.Validator = common.NewGenericEchoValidator()

	return e, nil
}

// jsonCompression gzips JSON responses only. Exported images are already
// compressed and are streamed unchanged.
func jsonCompression() (echo.MiddlewareFunc, error) {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.ContentTypes([]string{echo.MIMEApplicationJSON}),
		gzhttp.MinSize(gzipMinSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create compression middleware: %w", err)
	}
	return echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return wrapper(next)
	}), nil
}
