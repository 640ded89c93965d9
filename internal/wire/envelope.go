package wire

// KnackAPIKey is the REST API key value sent with page/view scoped requests,
// which authenticate through the user token instead.
const KnackAPIKey = "knack"

// Request headers understood by the record service.
const (
	HeaderAppID         = "X-Knack-Application-Id"
	HeaderAPIKey        = "X-Knack-REST-API-KEY"
	HeaderAuthorization = "Authorization"
)

// SessionRequest is the body of a login call.
type SessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser is the user part of a login response.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// SessionResponse is the body of a successful login call.
type SessionResponse struct {
	Session struct {
		User SessionUser `json:"user"`
	} `json:"session"`
}

// RecordsPage is one page of a record listing.
type RecordsPage struct {
	TotalPages   int              `json:"total_pages"`
	CurrentPage  int              `json:"current_page"`
	TotalRecords int              `json:"total_records"`
	Records      []map[string]any `json:"records"`
}

// Field describes one field of an object schema.
type Field struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Type   string      `json:"type"`
	Format FieldFormat `json:"format"`
}

// FieldFormat holds the allowed options of a multiple choice field.
type FieldFormat struct {
	Options []string `json:"options,omitempty"`
}

// FieldsResponse is the body of an object schema call.
type FieldsResponse struct {
	Fields []Field `json:"fields"`
}

// Options returns the options of the field with the given key.
func (r FieldsResponse) Options(key string) ([]string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Format.Options, true
		}
	}
	return nil, false
}
