package metrics

import (
	"strconv"
	"time"

	"talksy/internal/dispatcher"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talksy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "talksy_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)

	DispatchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talksy_dispatch_total",
			Help: "Utterances resolved by the dispatcher, by resolution kind and rule",
		},
		[]string{"kind", "rule"},
	)

	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talksy_dispatch_duration_seconds",
			Help:    "Time spent resolving an utterance, including the collaborator call",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	ActiveSockets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "talksy_active_websockets",
			Help: "Number of open assistant websocket connections",
		},
	)

	RemindersDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "talksy_reminders_delivered_total",
			Help: "Total number of reminders delivered",
		},
	)
)

// ObserveDispatch records one dispatcher resolution.
func ObserveDispatch(o dispatcher.Outcome, elapsed time.Duration) {
	DispatchCount.WithLabelValues(string(o.Kind), o.Rule).Inc()
	DispatchDuration.WithLabelValues(string(o.Kind)).Observe(elapsed.Seconds())
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		RequestCount.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
