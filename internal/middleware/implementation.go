package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/akolanti/DocSummarizer/internal/adapter/utils"
	"github.com/akolanti/DocSummarizer/internal/auth"
	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/handlers"
)

type userKey struct{}

// Username returns the authenticated user stored by the session check.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(userKey{}).(string)
	return name
}

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		//this is a bad request
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusBadRequest,
			errorMessage: "request is empty",
		}
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With(config.TRACE_ID_KEY, trace)
	req.Header.Set("X-Trace-Id", trace)
	re.writer.Header().Set("X-Trace-Id", trace)
	re.req = req.WithContext(config.WithTraceID(req.Context(), trace))

	re.logger.Debug("trace middleware injected")
	return re
}

func (m *Middleware) authenticate(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Authenticating request")
	if m.authDisabled {
		re.logger.Warn("auth bypass enabled")
		return re
	}

	session, ok := m.sessions.Validate(re.req.Context(), auth.TokenFromRequest(re.req))
	if !ok {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "Unauthorized",
		}
		return re
	}
	re.req = re.req.WithContext(context.WithValue(re.req.Context(), userKey{}, session.Username))
	re.logger.Debug("Authorized", "username", session.Username)
	return re
}

func (m *Middleware) rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !m.limiter.GetLimiter(ip).Allow() {
		re.logger.Warn("Too many requests", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
	}
	return re
}

// handleBadRequest writes the failure, if any, and reports whether the
// request may continue.
func handleBadRequest(re requestResponseStruct) bool {
	if !re.badRequest.isBadRequest {
		return true
	}
	remote := ""
	ctx := context.Background()
	if re.req != nil {
		remote = re.req.RemoteAddr
		ctx = re.req.Context()
	}
	re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", remote)
	handlers.WriteErrorResponse(ctx, re.writer, re.badRequest.httpCode, re.badRequest.errorMessage)
	return false
}
