package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	polls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homework_polls_total",
		Help: "Poll cycles by outcome (ok or error kind).",
	}, []string{"result"})
	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homework_notifications_total",
		Help: "Notification attempts by message class and delivery result.",
	}, []string{"kind", "result"})
	cursor = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "homework_cursor_seconds",
		Help: "Current from_date cursor as a Unix timestamp.",
	})
	pollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "homework_poll_duration_seconds",
		Help:    "Duration of one poll cycle including notification.",
		Buckets: prometheus.DefBuckets,
	})
)

func ObservePoll(result string, took time.Duration) {
	polls.WithLabelValues(result).Inc()
	pollDuration.Observe(took.Seconds())
}

func ObserveNotification(kind string, delivered bool) {
	result := "delivered"
	if !delivered {
		result = "failed"
	}
	notifications.WithLabelValues(kind, result).Inc()
}

func SetCursor(ts int64) { cursor.Set(float64(ts)) }

// BootstrapServer serves /metrics and /healthz on addr in the background.
func BootstrapServer(addr string, log *logrus.Entry) *http.Server {
	srv := newServer(addr)
	go func() {
		log.WithField("addr", addr).Info("Metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server error")
		}
	}()
	return srv
}

// Shutdown stops the server, waiting at most three seconds.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}
