package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/mouthpiecer/internal/middleware"
	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/service"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// RecordService defines the owner-scoped record operations.
type RecordService interface {
	List(ctx context.Context, ownerID string, page, rows int) (service.Page, error)
	Create(ctx context.Context, ownerID string, m models.Mouthpiece) (models.Mouthpiece, error)
	Update(ctx context.Context, ownerID, id string, m models.Mouthpiece) (models.Mouthpiece, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// RecordHandler serves the records of the authenticated user.
type RecordHandler struct {
	Records RecordService
	Fields  wire.FieldMap
	// RowsPerPage is used when the request does not name a page size.
	RowsPerPage int
}

// List handles GET requests with optional page and rows_per_page parameters.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", 1)
	if err != nil {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	rows, err := intParam(r, "rows_per_page", h.RowsPerPage)
	if err != nil {
		http.Error(w, "invalid rows_per_page", http.StatusBadRequest)
		return
	}

	p, err := h.Records.List(r.Context(), middleware.GetUserIDFromContext(r.Context()), page, rows)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := wire.RecordsPage{
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
		TotalRecords: p.TotalRecords,
		Records:      make([]map[string]any, 0, len(p.Records)),
	}
	for _, m := range p.Records {
		resp.Records = append(resp.Records, h.encode(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST requests carrying a new record.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.Records.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), m)
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.encode(created))
}

// Update handles PUT requests replacing the record named in the path.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decode(w, r)
	if !ok {
		return
	}
	updated, err := h.Records.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"), m)
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.encode(updated))
}

// Delete handles DELETE requests for the record named in the path.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Records.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"delete": true})
}

func (h *RecordHandler) decode(w http.ResponseWriter, r *http.Request) (models.Mouthpiece, bool) {
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return models.Mouthpiece{}, false
	}
	return h.Fields.DecodeMouthpiece(rec), true
}

func (h *RecordHandler) encode(m models.Mouthpiece) map[string]any {
	rec := h.Fields.EncodeMouthpiece(m)
	rec["id"] = m.ID
	return rec
}

func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrRecordNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}
