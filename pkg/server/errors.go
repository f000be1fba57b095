package server

import (
	"errors"
	"net/http"

	rdomerrors "github.com/vango-dev/rdom/internal/errors"
)

// Sentinel errors for common session conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrNoConnection is returned when attempting to send on a nil connection.
	ErrNoConnection = errors.New("server: no connection")
)

// writeError writes err as a JSON error body. Errors without a registered
// code are reported as bad requests.
func writeError(w http.ResponseWriter, status int, err error) {
	e := rdomerrors.FromError(err, rdomerrors.CodeServerBadRequest)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":` + e.FormatJSON() + "}\n"))
}
