// Package elabftw is the HTTP client for the eLabFTW REST API (v2).
// Every exported method performs exactly one request (or a fixed short
// sequence, e.g. create-then-patch) and returns the decoded JSON body.
// Failures surface as *StatusError (non-2xx) or *TransportError (the
// request never completed); there are no retries and no shared state
// beyond the immutable configuration.
package elabftw

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/matiasleandrokruk/elabmcp/internal/infra/config"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	mimeJSON            = "application/json"

	requestTimeout = 30 * time.Second

	// maxBodyCapture bounds how much of an error response body is kept.
	maxBodyCapture = 64 * 1024
)

// Client talks to one eLabFTW instance. Safe for sequential reuse; the
// configuration is never mutated after construction.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a Client from the process configuration. When TLS
// verification is disabled the transport accepts self-signed certificates.
func NewClient(cfg config.Config) *Client {
	transport := http.DefaultTransport
	if !cfg.VerifyTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
	}
}

// GetJSON performs a GET against baseURL+path with the given query and
// decodes the JSON response. Exported for the probe utility; the typed
// operations below are the intended API surface.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (any, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var out any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		return nil, fmt.Errorf("decode GET %s response: %w", path, decodeErr)
	}
	return out, nil
}

// post sends a JSON POST and returns the Location header of the response.
// The body is drained and discarded; eLabFTW create endpoints answer with
// an empty body and a Location pointing at the new resource.
func (c *Client) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode POST %s payload: %w", path, err)
	}
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()               //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return resp.Header.Get("Location"), nil
}

// patch sends a JSON PATCH and discards the response body.
func (c *Client) patch(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode PATCH %s payload: %w", path, err)
	}
	resp, err := c.do(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()               //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// delete sends a DELETE and discards the response body.
func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()               //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// do builds and executes one request. Non-2xx responses become *StatusError
// with a bounded body capture; network-level failures become *TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set(headerAuthorization, c.apiKey)
	if body != nil {
		req.Header.Set(headerContentType, mimeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		captured, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyCapture))
		resp.Body.Close() //nolint:errcheck
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(captured)}
	}
	return resp, nil
}

// upload posts a file as multipart form data. The request Content-Type is
// left to the multipart writer so the boundary is set correctly; only the
// Authorization header is carried over.
func (c *Client) upload(ctx context.Context, path, filePath, comment string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read upload file: %w", err)
	}
	if comment != "" {
		if err := writer.WriteField("comment", comment); err != nil {
			return fmt.Errorf("build multipart form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set(headerAuthorization, c.apiKey)
	req.Header.Set(headerContentType, writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		captured, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyCapture))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(captured)}
	}
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// idFromLocation extracts the numeric resource id from a Location header
// such as /api/v2/experiments/42.
func idFromLocation(location string) (int, bool) {
	if location == "" {
		return 0, false
	}
	parts := strings.Split(location, "/")
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, false
	}
	return id, true
}

func statusMessage(msg string) map[string]any {
	return map[string]any{"status": "success", "message": msg}
}

func baseName(path string) string { return filepath.Base(path) }
