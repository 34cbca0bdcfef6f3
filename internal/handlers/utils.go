package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/akolanti/DocSummarizer/internal/adapter"
	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/worker"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func writeTextDownload(w http.ResponseWriter, filename string, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		logRH.Error("Error writing download", "error", err)
	}
}

func WriteErrorResponse(ctx context.Context, w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(httpCode, message, config.TraceID(ctx)))
}

// writeError maps a pipeline or auth failure onto an HTTP status.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var inputErr *commonModels.InputError
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &inputErr):
		WriteErrorResponse(ctx, w, http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &maxBytes):
		WriteErrorResponse(ctx, w, http.StatusRequestEntityTooLarge, "upload too large")
	case errors.Is(err, authModel.ErrUserExists):
		WriteErrorResponse(ctx, w, http.StatusConflict, err.Error())
	case errors.Is(err, authModel.ErrInvalidCredentials):
		WriteErrorResponse(ctx, w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, worker.ErrPoolStopped):
		WriteErrorResponse(ctx, w, http.StatusServiceUnavailable, "server is shutting down")
	case errors.Is(err, context.DeadlineExceeded):
		WriteErrorResponse(ctx, w, http.StatusGatewayTimeout, "processing timed out")
	case errors.Is(err, context.Canceled):
		logRH.ForContext(ctx).Warn("request cancelled")
	default:
		logRH.ForContext(ctx).Error("Request failed", "error", err)
		WriteErrorResponse(ctx, w, http.StatusInternalServerError, "internal error")
	}
}

func toDocument(fh *multipart.FileHeader) commonModels.Document {
	return commonModels.Document{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// formDocuments collects the uploads under field, skipping parts sent
// without a filename.
func formDocuments(form *multipart.Form, field string) []commonModels.Document {
	if form == nil {
		return nil
	}
	var docs []commonModels.Document
	for _, fh := range form.File[field] {
		if fh.Filename == "" {
			continue
		}
		docs = append(docs, toDocument(fh))
	}
	return docs
}

func wantsTextDownload(r *http.Request) bool {
	return r.URL.Query().Get("download") == "txt"
}
