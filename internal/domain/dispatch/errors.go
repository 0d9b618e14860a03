package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matiasleandrokruk/elabmcp/internal/infra/elabftw"
)

// Kind classifies a failed tool call for rendering and logging.
type Kind int

const (
	// KindRemoteStatus means the server answered with a non-2xx status.
	KindRemoteStatus Kind = iota
	// KindTransport means the request never completed (DNS, TLS, timeout).
	KindTransport
	// KindInternal covers everything else: bad arguments, unknown tools,
	// panics, local filesystem failures.
	KindInternal
)

// maxBodyExcerpt bounds how much remote body text reaches the rendered
// error message.
const maxBodyExcerpt = 1000

// NormalizedError is the dispatcher's terminal error form. It is rendered
// into a single text block and never propagated further.
type NormalizedError struct {
	Kind       Kind
	Message    string
	StatusCode int
}

// normalize maps any error escaping a backend operation onto the three
// kinds. Status and transport failures are recognized by type; the rest is
// internal.
func normalize(err error) NormalizedError {
	var statusErr *elabftw.StatusError
	if errors.As(err, &statusErr) {
		return NormalizedError{
			Kind:       KindRemoteStatus,
			Message:    bodyExcerpt(statusErr.Body),
			StatusCode: statusErr.StatusCode,
		}
	}
	var transportErr *elabftw.TransportError
	if errors.As(err, &transportErr) {
		return NormalizedError{Kind: KindTransport, Message: transportErr.Error()}
	}
	return NormalizedError{Kind: KindInternal, Message: err.Error()}
}

const transportHint = `

Please check that:
1. The ELABFTW_API_URL is correct
2. The server is reachable
3. SSL certificates are properly configured (or set ELABFTW_VERIFY_SSL=false for self-signed certs)`

// renderError turns a NormalizedError into the user-facing text block.
func renderError(e NormalizedError) string {
	switch e.Kind {
	case KindRemoteStatus:
		return fmt.Sprintf("Error communicating with elabFTW: HTTP Error %d: %s", e.StatusCode, e.Message)
	case KindTransport:
		return fmt.Sprintf("Error connecting to elabFTW server: Request Error: %s%s", e.Message, transportHint)
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", e.Message)
	}
}

// bodyExcerpt bounds a remote response body for display. Invalid UTF-8
// (binary error pages) is replaced rather than passed through.
func bodyExcerpt(body string) string {
	body = strings.ToValidUTF8(body, "�")
	if len(body) > maxBodyExcerpt {
		return body[:maxBodyExcerpt] + "..."
	}
	return body
}
