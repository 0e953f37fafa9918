package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig carries what the router needs besides the Server.
type RouterConfig struct {
	JWTSecret []byte
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	// Health reports whether the service can reach its dependencies.
	Health func(ctx context.Context) error
}

// NewRouter registers every route on a new echo instance.
func NewRouter(s *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.Metrics != nil {
		e.Use(requestMetrics(cfg.Metrics))
	}

	e.GET("/health", func(c echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(cfg.Gatherer)))
	}

	api := e.Group("/api/v1", AuthJWT(cfg.JWTSecret))

	api.GET("/orders", s.GetOrders)
	api.POST("/orders/shipped/recompute", s.RecomputeShipped)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/reactivate", s.ReActivateOrder)
	api.POST("/orders/:orderId/reorder", s.ReOrder)
	api.POST("/orders/:orderId/details/:detailId/return", s.ReturnItem)
	api.POST("/order-details/:detailId/cancel", s.CancelItem)

	seller := api.Group("/seller")
	seller.GET("/order-details", s.GetSellerOrderDetails)
	seller.PUT("/order-details/:detailId/processed", s.SetProcessed)
	seller.POST("/order-details/:detailId/cancel", s.SellerCancelItem)
	seller.PUT("/orders/:orderId/shipped", s.SetShipped)

	return e
}

func requestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			m.Requests.WithLabelValues(route, strconv.Itoa(c.Response().Status)).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}
