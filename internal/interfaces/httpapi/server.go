package httpapi

import (
	"net/http"

	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
	"github.com/riskibarqy/golf-tournament/internal/usecase"
)

const (
	recalculateActiveJobPath = "/v1/internal/jobs/recalculate-active"
)

type RouterConfig struct {
	// Verifier guards the recalculate endpoint. Nil disables bearer auth.
	Verifier           TokenVerifier
	Metrics            MetricsRecorder
	RecalculateLimiter *IPRateLimiter
	CORSAllowedOrigins []string
	InternalJobToken   string
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerStandingsRoutes(mux, handler, cfg)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	inner := RequestMetrics(cfg.Metrics, mux)
	return RequestTracing(RequestID(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, inner)))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics MetricsRecorder) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

func registerStandingsRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings/teams", handler.ListTeamStandings)

	recalculate := RequireAuth(cfg.Verifier, http.HandlerFunc(handler.RecalculateStandings))
	mux.Handle("POST /v1/standings/recalculate", RateLimit(cfg.RecalculateLimiter, recalculate))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, token string) {
	mux.Handle("POST "+usecase.RecalculateStandingsJobPath,
		RequireInternalJobToken(token, http.HandlerFunc(handler.RunRecalculateStandingsJob)))
	mux.Handle("POST "+recalculateActiveJobPath,
		RequireInternalJobToken(token, http.HandlerFunc(handler.RunRecalculateActiveJob)))
}
