package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"marketfetch/internal/fetcher"
	"marketfetch/internal/provider"
	"marketfetch/internal/store"
)

type handler struct {
	session *fetcher.Session
	table   string
	logger  *zap.Logger
}

type sessionResponse struct {
	Provider           provider.ID   `json:"provider"`
	DisplayName        string        `json:"display_name"`
	CredentialSet      bool          `json:"credential_set"`
	CallCount          int           `json:"call_count"`
	CallThreshold      int           `json:"call_threshold"`
	SupportedProviders []provider.ID `json:"supported_providers"`
	Store              bool          `json:"store"`
}

// fetchResponse wraps every ticker result. A failed fetch still carries the
// empty record.
type fetchResponse struct {
	RequestID string      `json:"request_id"`
	Provider  provider.ID `json:"provider"`
	Value     any         `json:"value"`
	Error     string      `json:"error,omitempty"`
	StoredID  string      `json:"stored_id,omitempty"`
}

type switchRequest struct {
	Provider string `json:"provider" validate:"required"`
	APIKey   string `json:"api_key"`
}

var bodyValidator = validator.New()

func (h *handler) sessionInfo() sessionResponse {
	s := h.session
	id := s.Provider()
	return sessionResponse{
		Provider:           id,
		DisplayName:        id.DisplayName(),
		CredentialSet:      s.Credential() != "",
		CallCount:          s.CallCount(),
		CallThreshold:      s.CallThreshold(),
		SupportedProviders: s.SupportedProviders(),
		Store:              s.HasStore(),
	}
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessionInfo())
}

func (h *handler) putProvider(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := bodyValidator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "provider is required")
		return
	}
	if err := h.session.SwitchProvider(req.Provider, req.APIKey); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionInfo())
}

func (h *handler) price(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	res, err := h.session.Price(r.Context(), ticker)
	respond(h, w, r, ticker, provider.OpPrice, res, err)
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	q := r.URL.Query()
	res, err := h.session.Historical(r.Context(), ticker, q.Get("start"), q.Get("end"))
	respond(h, w, r, ticker, provider.OpHistorical, res, err)
}

func (h *handler) dividends(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	res, err := h.session.Dividends(r.Context(), ticker)
	respond(h, w, r, ticker, provider.OpDividends, res, err)
}

func (h *handler) fundamentals(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	res, err := h.session.Fundamentals(r.Context(), ticker)
	respond(h, w, r, ticker, provider.OpFundamentals, res, err)
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	res, err := h.session.ValidateTicker(r.Context(), ticker)
	respond(h, w, r, ticker, provider.OpValidate, res, err)
}

func (h *handler) sentiment(w http.ResponseWriter, r *http.Request) {
	s, err := h.session.StubSentiment(chi.URLParam(r, "ticker"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fetchResponse{
		RequestID: requestIDFrom(r.Context()),
		Provider:  h.session.Provider(),
		Value:     s,
	})
}

// respond writes res. A backend failure is a 502 with the empty record.
// With ?store=true a successful value is also saved.
func respond[T any](h *handler, w http.ResponseWriter, r *http.Request, ticker string, op provider.Operation, res fetcher.Result[T], err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := fetchResponse{
		RequestID: requestIDFrom(r.Context()),
		Provider:  h.session.Provider(),
		Value:     res.Value,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
		writeJSON(w, http.StatusBadGateway, out)
		return
	}
	if save, _ := strconv.ParseBool(r.URL.Query().Get("store")); save {
		id, err := h.save(r.Context(), ticker, op, res.Value)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out.StoredID = id
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) save(ctx context.Context, ticker string, op provider.Operation, v any) (string, error) {
	rec := store.NewRecord(strings.ToUpper(strings.TrimSpace(ticker)), string(op), "", v)
	if err := h.session.StoreToDatabase(ctx, h.table, rec); err != nil {
		return "", err
	}
	return rec.ID.String(), nil
}

// fail maps session errors to HTTP statuses.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid     *fetcher.InvalidRequestError
		unsupported *provider.UnsupportedProviderError
		unsupOp     *provider.UnsupportedOperationError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalid), errors.As(err, &unsupported), errors.Is(err, provider.ErrMissingCredential):
		status = http.StatusBadRequest
	case errors.As(err, &unsupOp):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, fetcher.ErrNoStore):
		status = http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
