package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/accounts-payable/internal/adapter/http/models"
	"github.com/api-sage/accounts-payable/internal/commons"
	"github.com/api-sage/accounts-payable/internal/domain"
	"github.com/api-sage/accounts-payable/internal/importer"
	"github.com/api-sage/accounts-payable/internal/logger"
)

const (
	defaultPageSize = 20
	maxUploadBytes  = 10 << 20
)

type AccountService interface {
	GetAccounts(ctx context.Context, dueDate, description string, page, size int) (commons.Response[commons.Page[models.AccountResponse]], error)
	GetAccountByID(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	CreateAccount(ctx context.Context, req models.AccountRequest) (commons.Response[models.AccountResponse], error)
	UpdateAccount(ctx context.Context, id string, req models.AccountRequest) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error)
	UpdateAccountStatus(ctx context.Context, id, status string) (commons.Response[models.AccountResponse], error)
	GetTotalPaid(ctx context.Context, startDate, endDate string) (commons.Response[json.Number], error)
	ImportAccountsFromCSV(ctx context.Context, file io.Reader) (int, error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(handler http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("GET /accounts", wrap(c.listAccounts))
	mux.Handle("POST /accounts", wrap(c.createAccount))
	mux.Handle("GET /accounts/total-paid", wrap(c.totalPaid))
	mux.Handle("POST /accounts/import", wrap(c.importAccounts))
	mux.Handle("GET /accounts/{id}", wrap(c.getAccount))
	mux.Handle("PUT /accounts/{id}", wrap(c.updateAccount))
	mux.Handle("DELETE /accounts/{id}", wrap(c.deleteAccount))
	mux.Handle("PATCH /accounts/{id}/status", wrap(c.updateAccountStatus))
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[commons.Page[models.AccountResponse]]("validation failed", err.Error()))
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[commons.Page[models.AccountResponse]]("validation failed", err.Error()))
		return
	}

	response, err := c.service.GetAccounts(r.Context(), r.URL.Query().Get("dueDate"), r.URL.Query().Get("description"), page, size)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[models.AccountResponse](w, r)
	if !ok {
		return
	}

	response, err := c.service.GetAccountByID(r.Context(), id)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusCreated, start)
	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) updateAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID[models.AccountResponse](w, r)
	if !ok {
		return
	}

	var req models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateAccount(r.Context(), id, req)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[struct{}](w, r)
	if !ok {
		return
	}

	response, err := c.service.DeleteAccount(r.Context(), id)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) updateAccountStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[models.AccountResponse](w, r)
	if !ok {
		return
	}

	response, err := c.service.UpdateAccountStatus(r.Context(), id, r.URL.Query().Get("status"))
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) totalPaid(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTotalPaid(r.Context(), r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, statusForError(err), response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

// importAccounts accepts a multipart upload and answers with plain text.
func (c *AccountController) importAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid multipart upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeText(w, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		logError(r, domain.ErrEmptyFile, nil)
		writeText(w, http.StatusBadRequest, domain.ErrEmptyFile.Error())
		return
	}

	imported, err := c.service.ImportAccountsFromCSV(r.Context(), file)
	if err != nil {
		logError(r, err, logger.Fields{"file": header.Filename})
		if errors.Is(err, domain.ErrEmptyFile) {
			writeText(w, http.StatusBadRequest, domain.ErrEmptyFile.Error())
			return
		}
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			writeText(w, http.StatusBadRequest, "Failed to parse CSV file: "+parseErr.Error())
			return
		}
		writeText(w, http.StatusInternalServerError, "Failed to import accounts")
		return
	}

	logResponse(r, http.StatusOK, start)
	writeText(w, http.StatusOK, fmt.Sprintf("Accounts imported successfully! (%d records)", imported))
}

// pathID validates the {id} path segment as a UUID and answers the request
// itself when it is malformed.
func pathID[T any](w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.PathValue("id")
	if _, err := uuid.Parse(raw); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[T]("validation failed", "id must be a valid UUID"))
		return "", false
	}

	return raw, true
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}

	return value, nil
}

func statusForError(err error) int {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
