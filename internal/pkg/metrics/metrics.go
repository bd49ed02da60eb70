package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal conta as requisições por método, rota e status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gocine_http_requests_total",
		Help: "Total de requisições HTTP por método, rota e status",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration registra a latência das requisições por método e rota.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gocine_http_request_duration_seconds",
		Help:    "Latência das requisições HTTP em segundos",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LikeEventsTotal conta mutações efetivas no Like Ledger ("like" ou "unlike").
	LikeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gocine_like_events_total",
		Help: "Total de curtidas adicionadas ou removidas",
	}, []string{"action"})

	// FriendshipEventsTotal conta mutações no grafo de amizades ("add" ou "remove").
	FriendshipEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gocine_friendship_events_total",
		Help: "Total de amizades criadas ou desfeitas",
	}, []string{"action"})

	// CacheLookupsTotal conta consultas ao cache de filmes por resultado ("hit", "miss", "error").
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gocine_cache_lookups_total",
		Help: "Total de consultas ao cache de filmes por resultado",
	}, []string{"result"})
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware registra contagem e latência de cada requisição.
// A rota é o padrão do chi (ex.: /v1/films/{id}) para manter a cardinalidade baixa.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler expõe o registry padrão no formato do Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
