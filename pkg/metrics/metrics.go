package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathquiz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mathquiz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	RoundsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathquiz_rounds_started_total",
			Help: "Questions shown, by game type",
		},
		[]string{"game_type"},
	)

	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mathquiz_answers_total",
			Help: "Answers checked, by game type and result",
		},
		[]string{"game_type", "result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, RoundsStarted, AnswersTotal)
	})
}

// ObserveAnswer cuenta una respuesta comprobada
func ObserveAnswer(gameType string, correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	AnswersTotal.WithLabelValues(gameType, result).Inc()
}

// Middleware mide cada petición. endpoint devuelve la ruta ya resuelta para
// no crear una serie por cada id de sesión.
func Middleware(next fasthttp.RequestHandler, endpoint func(ctx *fasthttp.RequestCtx) string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)

		method := string(ctx.Method())
		route := endpoint(ctx)

		RequestCounter.WithLabelValues(
			method,
			route,
			strconv.Itoa(ctx.Response.StatusCode()),
		).Inc()

		RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}
