package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linxiao/corpora/internal/config"
	"github.com/linxiao/corpora/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Log     *slog.Logger
	CORS    config.CORSConfig
	Auth    middleware.Middleware
	Health  *HealthHandler
	Account *AuthHandler
	Corpus  *CorpusHandler
	Opinion *OpinionHandler
	Tools   *ToolsHandler

	// AIRatePerMinute throttles the AI tool endpoints per client IP.
	AIRatePerMinute int
	RateLimiter     *middleware.RateLimiter

	// AIDeadline extends the connection deadlines on the AI routes past the
	// global server timeouts, covering the full upstream retry budget.
	AIDeadline time.Duration
}

// NewRouter assembles the route table and the middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.Health.Health)

	mux.HandleFunc("POST /api/auth/register", deps.Account.Register)
	mux.HandleFunc("POST /api/auth/login", deps.Account.Login)
	mux.HandleFunc("GET /api/auth/me", deps.Account.Me)
	mux.HandleFunc("PUT /api/auth/profile", deps.Account.UpdateProfile)

	mux.HandleFunc("POST /api/corpus", deps.Corpus.Create)
	mux.HandleFunc("GET /api/corpus", deps.Corpus.List)
	mux.HandleFunc("GET /api/corpus/stats", deps.Corpus.Stats)
	mux.HandleFunc("GET /api/corpus/themes", deps.Corpus.Themes)
	longRunning := middleware.ExtendDeadline(deps.AIDeadline)

	mux.Handle("POST /api/corpus/analyze", longRunning(http.HandlerFunc(deps.Corpus.Analyze)))
	mux.HandleFunc("GET /api/corpus/{id}", deps.Corpus.Get)
	mux.HandleFunc("PUT /api/corpus/{id}", deps.Corpus.Update)
	mux.HandleFunc("DELETE /api/corpus/{id}", deps.Corpus.Delete)

	mux.HandleFunc("GET /api/opinions", deps.Opinion.List)
	mux.HandleFunc("GET /api/opinions/stats", deps.Opinion.Stats)
	mux.HandleFunc("GET /api/opinions/{id}", deps.Opinion.Get)
	mux.HandleFunc("PUT /api/opinions/{id}", deps.Opinion.Update)
	mux.HandleFunc("DELETE /api/opinions/{id}", deps.Opinion.Delete)

	aiMux := http.NewServeMux()
	aiMux.HandleFunc("POST /ai/context-explain", deps.Tools.ExplainInContext)
	aiMux.HandleFunc("POST /ai/collocations", deps.Tools.Collocations)
	aiMux.HandleFunc("POST /ai/polish-tone", deps.Tools.PolishTone)
	aiMux.HandleFunc("POST /ai/logic-check", deps.Tools.CheckLogic)

	limited := http.Handler(aiMux)
	if deps.RateLimiter != nil && deps.AIRatePerMinute > 0 {
		limited = deps.RateLimiter.Limit(deps.AIRatePerMinute)(aiMux)
	}
	mux.Handle("/ai/", longRunning(limited))

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Log),
		middleware.Logger(deps.Log),
		middleware.CORS(deps.CORS),
		deps.Auth,
	)

	return chain(mux)
}
