package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/akolanti/DocSummarizer/internal/adapter"
	"github.com/akolanti/DocSummarizer/internal/adapter/utils"
	"github.com/akolanti/DocSummarizer/internal/api"
	"github.com/akolanti/DocSummarizer/internal/auth"
	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/domain/jobModel"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

const (
	summariesFilename     = "summaries.txt"
	searchResultsFilename = "search_results.txt"
	multipartMemory       = 10 << 20
)

// JobSubmitter is the slice of the worker pool the handlers need.
type JobSubmitter interface {
	Submit(ctx context.Context, job jobModel.Job) (jobModel.Result, error)
	WorkerCount() int64
}

type AccountService interface {
	Signup(ctx context.Context, username string, password string) error
	Login(ctx context.Context, username string, password string) (authModel.Session, error)
	Logout(ctx context.Context, token string)
}

type Handler struct {
	pool           JobSubmitter
	accounts       AccountService
	maxUploadBytes int64
	logger         *logger_i.Logger
}

func NewHandler(pool JobSubmitter, accounts AccountService, cfg config.PipelineConfig) *Handler {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = config.MaxUploadBytes
	}
	return &Handler{
		pool:           pool,
		accounts:       accounts,
		maxUploadBytes: maxBytes,
		logger:         logger_i.NewLogger("Handler"),
	}
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok", Workers: h.pool.WorkerCount()})
}

// UploadHandler godoc
// @Summary      Summarize one document
// @Description  Extracts the uploaded PDF, DOCX, RTF, ODT or TXT file, summarizes it chunk by chunk and condenses the result into one line.
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Document to summarize"
// @Success      200  {object}  api.SummaryResponse
// @Failure      400  {object}  api.ErrorResponse  "No file supplied"
// @Failure      401  {object}  api.ErrorResponse
// @Failure      413  {object}  api.ErrorResponse  "Upload too large"
// @Router       /upload [post]
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer h.removeForm(r.Context(), form)

	docs := formDocuments(form, "file")
	if len(docs) == 0 {
		writeError(r.Context(), w, &commonModels.InputError{Field: "file", Message: "no file supplied"})
		return
	}

	result, ok := h.runJob(w, r, jobModel.Job{JobType: jobModel.JobTypeSingle, Documents: docs[:1]})
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSummaryResponse(result.Summaries[0]))
}

// SummariesHandler godoc
// @Summary      Summarize several documents, one summary each
// @Description  Results keep the upload order. A document that cannot be read gets a placeholder summary instead of failing the batch.
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Produce      plain
// @Security     BearerAuth
// @Param        files     formData  file    true   "Documents to summarize"
// @Param        download  query     string  false  "txt to receive summaries.txt"
// @Success      200  {array}   api.SummaryResponse
// @Failure      400  {object}  api.ErrorResponse  "No documents supplied"
// @Failure      401  {object}  api.ErrorResponse
// @Router       /summaries [post]
func (h *Handler) SummariesHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer h.removeForm(r.Context(), form)

	result, ok := h.runJob(w, r, jobModel.Job{JobType: jobModel.JobTypePerFile, Documents: formDocuments(form, "files")})
	if !ok {
		return
	}
	h.writeSummaries(w, r, result.Summaries)
}

// CombinedSummaryHandler godoc
// @Summary      One summary across several documents, guided by a query
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Produce      plain
// @Security     BearerAuth
// @Param        files       formData  file    true   "Documents to combine"
// @Param        searchText  formData  string  true   "Question the combined summary should answer"
// @Param        download    query     string  false  "txt to receive summaries.txt"
// @Success      200  {array}   api.SummaryResponse  "A single Combined Summary entry"
// @Failure      400  {object}  api.ErrorResponse    "No documents or missing searchText"
// @Failure      401  {object}  api.ErrorResponse
// @Router       /summaries/combined [post]
func (h *Handler) CombinedSummaryHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer h.removeForm(r.Context(), form)

	job := jobModel.Job{
		JobType:   jobModel.JobTypeCombined,
		Documents: formDocuments(form, "files"),
		Query:     r.FormValue("searchText"),
	}
	result, ok := h.runJob(w, r, job)
	if !ok {
		return
	}
	h.writeSummaries(w, r, result.Summaries)
}

// SearchHandler godoc
// @Summary      Search each document for a phrase
// @Description  Returns search_results.txt with one section per document.
// @Tags         Search
// @Accept       multipart/form-data
// @Produce      plain
// @Security     BearerAuth
// @Param        files       formData  file    true  "Documents to search"
// @Param        searchText  formData  string  true  "Text to look for"
// @Success      200  {string}  string  "search_results.txt"
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Router       /search [post]
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer h.removeForm(r.Context(), form)

	job := jobModel.Job{
		JobType:   jobModel.JobTypeSearch,
		Documents: formDocuments(form, "files"),
		Query:     r.FormValue("searchText"),
	}
	result, ok := h.runJob(w, r, job)
	if !ok {
		return
	}
	writeTextDownload(w, searchResultsFilename, adapter.ToSearchText(result.Searches))
}

// SignupHandler godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.CredentialsRequest  true  "Username and password"
// @Success      201      {object}  api.SignupResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse  "Username taken"
// @Router       /signup [post]
func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if err := h.accounts.Signup(r.Context(), creds.Username, creds.Password); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.SignupResponse{Username: creds.Username})
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Returns a session token and also sets it as the session cookie.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.CredentialsRequest  true  "Username and password"
// @Success      200      {object}  api.LoginResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	session, err := h.accounts.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJsonResponse(w, http.StatusOK, api.LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// LogoutHandler godoc
// @Summary      Log out
// @Tags         Auth
// @Security     BearerAuth
// @Success      204
// @Router       /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.accounts.Logout(r.Context(), auth.TokenFromRequest(r))
	http.SetCookie(w, &http.Cookie{Name: config.SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) (*multipart.Form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			writeError(r.Context(), w, err)
		} else {
			writeError(r.Context(), w, &commonModels.InputError{Field: "files", Message: "expected a multipart form upload"})
		}
		return nil, false
	}
	return r.MultipartForm, true
}

func (h *Handler) removeForm(ctx context.Context, form *multipart.Form) {
	if err := form.RemoveAll(); err != nil {
		h.logger.ForContext(ctx).Error("Could not remove multipart temp files", "error", err)
	}
}

// runJob hands the job to the pool and writes the error response itself
// when the job cannot produce a result.
func (h *Handler) runJob(w http.ResponseWriter, r *http.Request, job jobModel.Job) (jobModel.Result, bool) {
	ctx := r.Context()
	job.Id = utils.GetNewUUID()
	job.TraceId = config.TraceID(ctx)

	h.logger.ForContext(ctx).Info("Submitting job", "jobId", job.Id, "jobType", job.JobType, "documents", len(job.Documents))
	result, err := h.pool.Submit(ctx, job)
	if err == nil {
		err = result.Err
	}
	if err != nil {
		writeError(ctx, w, err)
		return result, false
	}
	return result, true
}

func (h *Handler) writeSummaries(w http.ResponseWriter, r *http.Request, summaries []commonModels.SummaryResult) {
	if wantsTextDownload(r) {
		writeTextDownload(w, summariesFilename, adapter.ToSummaryText(summaries))
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSummaryResponses(summaries))
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (api.CredentialsRequest, bool) {
	var creds api.CredentialsRequest
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&creds); err != nil {
		logRH.ForContext(r.Context()).Warn("Bad credentials payload", "error", err)
		WriteErrorResponse(r.Context(), w, http.StatusBadRequest, "Bad Request")
		return creds, false
	}
	return creds, true
}
