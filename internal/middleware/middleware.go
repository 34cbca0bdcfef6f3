package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/internal/metrics"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"golang.org/x/time/rate"
)

// SessionValidator resolves a session token.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (authModel.Session, bool)
}

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Middleware struct {
	sessions     SessionValidator
	limiter      *IPRateLimiter
	authDisabled bool
	logger       *logger_i.Logger
}

func New(sessions SessionValidator, cfg config.Config) *Middleware {
	limit, burst := cfg.Server.RateLimit, cfg.Server.RateBurst
	if limit <= 0 {
		limit = config.RATE_LIMIT_PER_SECOND
	}
	if burst <= 0 {
		burst = config.BURST_RATE_LIMIT_PER_SECOND
	}
	return &Middleware{
		sessions:     sessions,
		limiter:      NewIPRateLimiter(rate.Limit(limit), burst),
		authDisabled: cfg.Auth.Disabled,
		logger:       logger_i.NewLogger("middleware"),
	}
}

// Wrap runs trace injection, rate limiting and session checks before next.
func (m *Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return m.wrap(next, true)
}

// WrapPublic is Wrap without the session check, for signup/login/health.
func (m *Middleware) WrapPublic(next http.HandlerFunc) http.HandlerFunc {
	return m.wrap(next, false)
}

func (m *Middleware) wrap(next http.HandlerFunc, requireSession bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		defer func() {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
		}()

		re := m.processRequest(requestResponseStruct{req: r, writer: rec}, requireSession)
		if !handleBadRequest(re) {
			return
		}
		next(rec, re.req)
	}
}

func (m *Middleware) processRequest(re requestResponseStruct, requireSession bool) requestResponseStruct {
	re.logger = m.logger
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	re = m.rateLimiter(re)
	if re.badRequest.isBadRequest {
		return re //stop here if rate limit fails
	}
	if requireSession {
		re = m.authenticate(re)
	}
	return re
}
