package elabftw

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/matiasleandrokruk/elabmcp/internal/infra/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
	return client, srv
}

func TestGetJSONSetsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	if _, err := client.GetJSON(context.Background(), "/info", nil); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if gotAuth != "test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "test-key")
	}
}

func TestGetJSONDecodesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"PCR run"}]`))
	}))

	out, err := client.GetJSON(context.Background(), "/experiments", nil)
	if err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	list, ok := out.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("GetJSON() = %#v, want one-element list", out)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"description":"no access"}`))
	}))

	_, err := client.GetJSON(context.Background(), "/experiments/9", nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("GetJSON() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", statusErr.StatusCode)
	}
	if statusErr.Body != `{"description":"no access"}` {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestGetJSONTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(config.Config{BaseURL: url, APIKey: "k"})
	_, err := client.GetJSON(context.Background(), "/experiments", nil)
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("GetJSON() error = %v, want *TransportError", err)
	}
}

func TestCreateExperimentFollowsLocation(t *testing.T) {
	var tagPayloads []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/experiments":
			var payload map[string]any
			_ = json.NewDecoder(r.Body).Decode(&payload)
			if payload["title"] != "Test run" {
				t.Errorf("POST title = %v", payload["title"])
			}
			if _, present := payload["template"]; present {
				t.Error("template sent despite being nil")
			}
			w.Header().Set("Location", "/api/v2/experiments/42")
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPost && r.URL.Path == "/experiments/42/tags":
			var payload map[string]string
			_ = json.NewDecoder(r.Body).Decode(&payload)
			tagPayloads = append(tagPayloads, payload["tag"])
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && r.URL.Path == "/experiments/42":
			_, _ = w.Write([]byte(`{"id":42,"title":"Test run"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	out, err := client.CreateExperiment(context.Background(), CreateExperimentParams{
		Title: "Test run",
		Tags:  []string{"pcr", "draft"},
	})
	if err != nil {
		t.Fatalf("CreateExperiment() error = %v", err)
	}
	record, ok := out.(map[string]any)
	if !ok || record["id"] != float64(42) {
		t.Fatalf("CreateExperiment() = %#v, want record with id 42", out)
	}
	if len(tagPayloads) != 2 || tagPayloads[0] != "pcr" || tagPayloads[1] != "draft" {
		t.Errorf("tag payloads = %v", tagPayloads)
	}
}

func TestCreateExperimentNoLocation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	_, err := client.CreateExperiment(context.Background(), CreateExperimentParams{Title: "x"})
	if err == nil {
		t.Fatal("CreateExperiment() error = nil, want location failure")
	}
}

func TestCreateItemTwoStep(t *testing.T) {
	var patched map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/items":
			var payload map[string]int
			_ = json.NewDecoder(r.Body).Decode(&payload)
			if payload["category_id"] != 3 {
				t.Errorf("category_id = %d, want 3", payload["category_id"])
			}
			w.Header().Set("Location", "/api/v2/items/7")
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPatch && r.URL.Path == "/items/7":
			_ = json.NewDecoder(r.Body).Decode(&patched)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Path == "/items/7/tags":
			// A duplicate tag: status errors here must not fail the create.
			w.WriteHeader(http.StatusBadRequest)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	out, err := client.CreateItem(context.Background(), CreateItemParams{
		Category: 3,
		Title:    "Plasmid stock",
		Tags:     []string{"frozen"},
	})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if patched["title"] != "Plasmid stock" {
		t.Errorf("PATCH title = %v", patched["title"])
	}
	if out["item_id"] != 7 {
		t.Errorf("item_id = %v, want 7", out["item_id"])
	}
}

func TestCreateItemPatchFailureSurfaces(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/items":
			w.Header().Set("Location", "/api/v2/items/7")
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPatch && r.URL.Path == "/items/7":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"description":"read only"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	_, err := client.CreateItem(context.Background(), CreateItemParams{Category: 3, Title: "x"})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("CreateItem() error = %v, want *StatusError from the patch step", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", statusErr.StatusCode)
	}
}

func TestUpdateExperimentNoFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))

	if _, err := client.UpdateExperiment(context.Background(), 1, UpdateExperimentParams{}); err == nil {
		t.Fatal("UpdateExperiment() error = nil, want no-fields failure")
	}
}

func TestLinkToExperimentRejectsBadType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))

	if _, err := client.LinkToExperiment(context.Background(), 1, 2, "uploads"); err == nil {
		t.Fatal("LinkToExperiment() error = nil, want link type failure")
	}
}

func TestDeleteExperimentMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/experiments/5" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	out, err := client.DeleteExperiment(context.Background(), 5)
	if err != nil {
		t.Fatalf("DeleteExperiment() error = %v", err)
	}
	if out["message"] != "Experiment 5 has been deleted" {
		t.Errorf("message = %v", out["message"])
	}
}

func TestUploadToExperimentMultipart(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gel.png")
	if err := os.WriteFile(file, []byte("image-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	var gotFile, gotComment string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close() //nolint:errcheck
		content, _ := io.ReadAll(f)
		if string(content) != "image-bytes" {
			t.Errorf("file content = %q", content)
		}
		gotFile = header.Filename
		gotComment = r.FormValue("comment")
		w.WriteHeader(http.StatusCreated)
	}))

	out, err := client.UploadToExperiment(context.Background(), 12, file, "gel photo")
	if err != nil {
		t.Fatalf("UploadToExperiment() error = %v", err)
	}
	if gotFile != "gel.png" {
		t.Errorf("filename = %q, want gel.png", gotFile)
	}
	if gotComment != "gel photo" {
		t.Errorf("comment = %q", gotComment)
	}
	if out["message"] != "File 'gel.png' uploaded to experiment 12" {
		t.Errorf("message = %v", out["message"])
	}
}

func TestListExperimentsQuery(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListExperiments(context.Background(), ListExperimentsParams{
		Limit:  15,
		Offset: 30,
		Search: "pcr",
		Owner:  "2,3",
	})
	if err != nil {
		t.Fatalf("ListExperiments() error = %v", err)
	}
	want := map[string]string{"limit": "15", "offset": "30", "q": "pcr", "owner": "2,3"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestListEventsQuery(t *testing.T) {
	var gotItem string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotItem = r.URL.Query().Get("item")
		_, _ = w.Write([]byte(`[]`))
	}))

	itemID := 8
	_, err := client.ListEvents(context.Background(), ListEventsParams{Limit: 50, ItemID: &itemID})
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if gotItem != "8" {
		t.Errorf("item = %q, want 8", gotItem)
	}
}

func TestCreateBookingFetchesRecord(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/events":
			w.Header().Set("Location", "/api/v2/events/99")
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && r.URL.Path == "/events/99":
			_, _ = w.Write([]byte(`{"id":99,"title":"Confocal"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	out, err := client.CreateBooking(context.Background(), CreateBookingParams{
		ItemID: 8,
		Start:  "2026-09-01T09:00:00",
		End:    "2026-09-01T11:00:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	record, ok := out.(map[string]any)
	if !ok || record["id"] != float64(99) {
		t.Fatalf("CreateBooking() = %#v, want event record", out)
	}
}

func TestIDFromLocation(t *testing.T) {
	tests := []struct {
		location string
		wantID   int
		wantOK   bool
	}{
		{"/api/v2/experiments/42", 42, true},
		{"https://lab.example.org/api/v2/items/7", 7, true},
		{"", 0, false},
		{"/api/v2/experiments/new", 0, false},
	}
	for _, tt := range tests {
		id, ok := idFromLocation(tt.location)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("idFromLocation(%q) = (%d, %v), want (%d, %v)", tt.location, id, ok, tt.wantID, tt.wantOK)
		}
	}
}
