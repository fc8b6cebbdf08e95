package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

const msgLoadFailed = "Failed to load questions"

// QuestionSource supplies questions for a language and canonical filter.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, language, filter string) ([]entities.Question, error)
}

// Options configures the router.
type Options struct {
	Languages       []string
	DefaultLanguage string
	CORSOrigins     []string
	Timeout         time.Duration
}

type api struct {
	source QuestionSource
	opts   Options
	logger *zap.Logger
}

// NewRouter serves the question API:
//
//	GET /api/questions?lang=&filter=
//	GET /api/categories
//	GET /healthz
func NewRouter(source QuestionSource, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = entities.DefaultLanguage
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{opts.DefaultLanguage}
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	a := &api{source: source, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", a.questions)
		r.Get("/categories", a.categories)
	})

	return r
}

func (a *api) questions(w http.ResponseWriter, r *http.Request) {
	rawLang := r.URL.Query().Get("lang")
	lang, ok := entities.NormalizeLanguage(rawLang, a.opts.Languages, a.opts.DefaultLanguage)
	if !ok {
		a.logger.Warn("unsupported language, using default",
			zap.String("language", rawLang),
			zap.String("default", lang),
		)
	}

	filter := entities.ParseFilter(r.URL.Query().Get("filter"))
	if len(filter.Unknown) > 0 {
		a.logger.Warn("unknown categories dropped",
			zap.Strings("unknown", filter.Unknown),
		)
	}

	questions, err := a.source.FetchQuestions(r.Context(), lang, filter.String())
	if err != nil {
		a.logger.Error("failed to load questions",
			zap.String("language", lang),
			zap.String("filter", filter.String()),
			zap.Error(err),
		)
		respondJSON(w, http.StatusInternalServerError, errResp{Error: msgLoadFailed})
		return
	}
	if questions == nil {
		questions = []entities.Question{}
	}

	respondJSON(w, http.StatusOK, questions)
}

type categoriesResp struct {
	Categories []entities.Category `json:"categories"`
	Languages  []string            `json:"languages"`
	Modes      []entities.Mode     `json:"modes"`
	MaxOptions []int               `json:"maxOptions"`
}

func (a *api) categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, categoriesResp{
		Categories: entities.AllCategories,
		Languages:  a.opts.Languages,
		Modes:      entities.Modes,
		MaxOptions: entities.MaxOptions,
	})
}

type errResp struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// requestLogger logs each request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
