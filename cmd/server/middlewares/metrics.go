// cmd/server/middlewares/metrics.go
package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HubStats is the slice of the event hub the metrics read.
type HubStats interface {
	Stats() (subscribers int, dropped uint64)
	Delivered() uint64
}

// LoopStats is the slice of the store loop the metrics read.
type LoopStats interface {
	Alive() bool
	Executed() uint64
}

// normalizeRoutePath returns the route template to prevent high cardinality
// in metrics labels. Returns the actual path for unmatched routes (404s).
func normalizeRoutePath(c *fiber.Ctx) string {
	if route := c.Route(); route != nil {
		return route.Path // already the template (e.g., "/notes/:id")
	}
	return c.Path()
}

// normalizeStatus returns the status code as a string for Prometheus metrics
// 2xx -> "2xx", 4xx -> "4xx", 5xx -> "5xx"
func normalizeStatus(status int) string {
	if status >= 200 && status < 300 {
		return "2xx"
	} else if status >= 400 && status < 500 {
		return "4xx"
	} else if status >= 500 && status < 600 {
		return "5xx"
	}
	return strconv.Itoa(status)
}

// StoreCollectors exposes hub fan-out and store loop counters. They are read
// at scrape time.
func StoreCollectors(hub HubStats, loop LoopStats) []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "notes_stream_subscribers",
			Help: "Open note stream connections",
		}, func() float64 {
			n, _ := hub.Stats()
			return float64(n)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "notes_stream_events_dropped_total",
			Help: "View events dropped because a subscriber's outbox was full",
		}, func() float64 {
			_, dropped := hub.Stats()
			return float64(dropped)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "notes_stream_events_delivered_total",
			Help: "View events queued to subscribers",
		}, func() float64 {
			return float64(hub.Delivered())
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "notes_store_commands_total",
			Help: "Commands executed by the store loop",
		}, func() float64 {
			return float64(loop.Executed())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "notes_store_loop_up",
			Help: "1 while the store loop accepts commands",
		}, func() float64 {
			if loop.Alive() {
				return 1
			}
			return 0
		}),
	}
}

// AttachMetrics gives the supplied Fiber app its **own** Prometheus registry
// and wires a /metrics endpoint plus request-timing middleware. Extra
// collectors are registered alongside the HTTP ones.
func AttachMetrics(app *fiber.App, extra ...prometheus.Collector) {
	reg := prometheus.NewRegistry()

	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reg.MustRegister(reqDuration, reqTotal)
	reg.MustRegister(extra...)

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start).Seconds()

		method := c.Method()
		path := normalizeRoutePath(c)
		status := normalizeStatus(c.Response().StatusCode())

		reqDuration.WithLabelValues(method, path, status).Observe(dur)
		reqTotal.WithLabelValues(method, path, status).Inc()
		return err
	})

	app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
}
