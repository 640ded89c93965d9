package http

import (
	"net/http"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// SchemaHandler describes the fields of the mouthpiece object.
type SchemaHandler struct {
	Fields wire.FieldMap
	// Makes returns the options of the make field.
	Makes func() []string
}

// List answers with the mouthpiece object schema.
func (h *SchemaHandler) List(w http.ResponseWriter, _ *http.Request) {
	choice := func(key, label string, opts []string) wire.Field {
		return wire.Field{Key: key, Label: label, Type: "multiple_choice", Format: wire.FieldFormat{Options: opts}}
	}
	writeJSON(w, http.StatusOK, wire.FieldsResponse{Fields: []wire.Field{
		choice(h.Fields.Make, "Make", h.Makes()),
		{Key: h.Fields.Model, Label: "Model", Type: "short_text"},
		choice(h.Fields.Type, "Type", names(models.Types)),
		choice(h.Fields.Threads, "Threads", names(models.ThreadOptions)),
		choice(h.Fields.Finish, "Finish", h.finishes()),
		{Key: h.Fields.Note, Label: "Note", Type: "paragraph_text"},
	}})
}

func (h *SchemaHandler) finishes() []string {
	out := make([]string, len(models.Finishes))
	for i, v := range models.Finishes {
		out[i] = h.Fields.WireFinish(v)
	}
	return out
}

func names[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
