package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Количество обработанных HTTP-запросов
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	// Время обработки HTTP-запросов
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Попытки регистрации и входа
	AuthAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Register and login attempts by outcome",
		},
		[]string{"action", "result"},
	)

	// Успешные операции над заметками
	NoteOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "note_operations_total",
			Help: "Successful note operations by kind",
		},
		[]string{"operation"},
	)

	initOnce sync.Once
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Init регистрирует метрики в реестре по умолчанию. Повторный вызов ничего не делает.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AuthAttemptsTotal)
		prometheus.MustRegister(NoteOperationsTotal)
	})
}

// Handler отдаёт метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest учитывает один HTTP-запрос
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AuthAttempt учитывает попытку register/login
func AuthAttempt(action string, ok bool) {
	result := ResultSuccess
	if !ok {
		result = ResultFailure
	}
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// NoteOperation учитывает успешную операцию над заметкой
func NoteOperation(operation string) {
	NoteOperationsTotal.WithLabelValues(operation).Inc()
}
