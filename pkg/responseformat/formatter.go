package responseformat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/chrissnell/univtime/pkg/calerr"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// ErrorBody is the payload written for failed requests.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// WriteResponse writes data with the given status in the format selected by
// the request. JSON is the default; format=msgpack selects MessagePack.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if req.URL.Query().Get("format") == "msgpack" {
		return f.writeMsgPack(w, status, data)
	}
	return f.writeJSON(w, status, data)
}

// WriteError writes err with the status from StatusFor.
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, err error) error {
	return f.WriteErrorStatus(w, req, StatusFor(err), err)
}

// WriteErrorStatus writes err with an explicit status.
func (f *Formatter) WriteErrorStatus(w http.ResponseWriter, req *http.Request, status int, err error) error {
	return f.WriteResponse(w, req, status, ErrorBody{Error: err.Error(), Kind: Kind(err)})
}

// StatusFor maps the engine's error kinds onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, calerr.ErrInvalidDate), errors.Is(err, calerr.ErrInvalidPrecision):
		return http.StatusBadRequest
	case errors.Is(err, calerr.ErrUnsupportedConversion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Kind names the engine error kind err wraps, or "" for other errors.
func Kind(err error) string {
	for _, k := range []error{
		calerr.ErrInvalidDate,
		calerr.ErrInvalidPrecision,
		calerr.ErrUnsupportedConversion,
		calerr.ErrSearchDidNotConverge,
	} {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ""
}

func (f *Formatter) writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func (f *Formatter) writeMsgPack(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/x-msgpack")
	w.WriteHeader(status)
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}
