// Package wire maps mouthpiece and user records to the record service's JSON
// schema. The service identifies fields by opaque keys ("field_17"); FieldMap
// is the only place that knows which key holds which logical field.
package wire

import (
	"fmt"

	"github.com/atinyakov/mouthpiecer/internal/models"
)

// FieldMap maps logical fields to wire keys.
type FieldMap struct {
	Make    string `yaml:"make" validate:"required"`
	Model   string `yaml:"model" validate:"required"`
	Type    string `yaml:"type" validate:"required"`
	Threads string `yaml:"threads" validate:"required"`
	Finish  string `yaml:"finish" validate:"required"`
	Note    string `yaml:"note" validate:"required"`

	UserName     string `yaml:"user_name" validate:"required"`
	UserEmail    string `yaml:"user_email" validate:"required"`
	UserPassword string `yaml:"user_password" validate:"required"`
	UserStatus   string `yaml:"user_status" validate:"required"`
	UserRole     string `yaml:"user_role" validate:"required"`

	// FinishValues maps finishes whose stored text differs from their
	// logical name. Unlisted finishes are stored as is.
	FinishValues map[models.Finish]string `yaml:"finish_values"`
}

// DefaultFieldMap returns the keys of the hosted application's schema.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Make:    "field_17",
		Model:   "field_16",
		Type:    "field_24",
		Threads: "field_25",
		Finish:  "field_26",
		Note:    "field_27",

		UserName:     "field_1",
		UserEmail:    "field_2",
		UserPassword: "field_3",
		UserStatus:   "field_4",
		UserRole:     "field_5",

		FinishValues: map[models.Finish]string{
			models.SilverPlated: "silver plated",
			models.GoldPlated:   "gold plated",
		},
	}
}

// WireFinish returns the stored text of a finish.
func (f FieldMap) WireFinish(v models.Finish) string {
	if s, ok := f.FinishValues[v]; ok {
		return s
	}
	return string(v)
}

// LogicalFinish maps stored finish text back to its logical value.
func (f FieldMap) LogicalFinish(s string) models.Finish {
	for k, v := range f.FinishValues {
		if v == s {
			return k
		}
	}
	return models.Finish(s)
}

// EncodeMouthpiece builds the request body for a create or update call.
// The ID is never sent; the service owns it.
func (f FieldMap) EncodeMouthpiece(m models.Mouthpiece) map[string]any {
	m = m.Normalize()
	return map[string]any{
		f.Make:    m.Make,
		f.Model:   m.Model,
		f.Type:    string(m.Type),
		f.Threads: string(m.Threads),
		f.Finish:  f.WireFinish(m.Finish),
		f.Note:    m.Note,
	}
}

// DecodeMouthpiece reads a record returned by the service. Missing keys decode
// to empty values.
func (f FieldMap) DecodeMouthpiece(rec map[string]any) models.Mouthpiece {
	return models.Mouthpiece{
		ID:      str(rec["id"]),
		Make:    str(rec[f.Make]),
		Model:   str(rec[f.Model]),
		Type:    models.Type(str(rec[f.Type])),
		Threads: models.Threads(str(rec[f.Threads])),
		Finish:  f.LogicalFinish(str(rec[f.Finish])),
		Note:    str(rec[f.Note]),
	}
}

// EncodeUser builds the body of an account creation call.
func (f FieldMap) EncodeUser(u models.NewUser) map[string]any {
	return map[string]any{
		f.UserName:     map[string]string{"first": u.FirstName, "last": u.LastName},
		f.UserEmail:    u.Email,
		f.UserPassword: u.Password,
		f.UserStatus:   u.Status,
		f.UserRole:     u.Role,
	}
}

// DecodeUser reads an account creation body.
func (f FieldMap) DecodeUser(rec map[string]any) (models.NewUser, error) {
	u := models.NewUser{
		Email:    str(rec[f.UserEmail]),
		Password: str(rec[f.UserPassword]),
		Status:   str(rec[f.UserStatus]),
		Role:     str(rec[f.UserRole]),
	}
	switch name := rec[f.UserName].(type) {
	case map[string]any:
		u.FirstName = str(name["first"])
		u.LastName = str(name["last"])
	case nil:
	default:
		return u, fmt.Errorf("%s: unexpected name value %T", f.UserName, name)
	}
	return u, nil
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
