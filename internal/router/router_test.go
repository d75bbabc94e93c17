package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"studentportal/internal/config"
	"studentportal/internal/handler"
	"studentportal/internal/metrics"
	"studentportal/internal/repository"
	"studentportal/internal/service"
	"studentportal/internal/storage"
	"studentportal/internal/validation"
)

// newTestServer wires the full route table over a store that was never
// initialized and a local upload directory.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{MaxUploadBytes: 1 << 10}
	m := metrics.New(prometheus.NewRegistry())
	v := validation.New()

	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	Register(e, cfg, m, v, Handlers{
		System:  handler.NewSystemHandler(service.NewDiagnosticsService(nil, nil, cfg)),
		User:    handler.NewUserHandler(service.NewUserService(repository.NewUserRepository(nil, m), nil, v)),
		Project: handler.NewProjectHandler(service.NewProjectService(repository.NewProjectRepository(nil, m), v)),
		Payment: handler.NewPaymentHandler(service.NewPaymentService(repository.NewPaymentRepository(nil, m), v)),
		Message: handler.NewMessageHandler(service.NewMessageService(repository.NewMessageRepository(nil, m), v)),
		Upload:  handler.NewUploadHandler(service.NewUploadService(files, cfg.MaxUploadBytes)),
	})
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoutes_ErrorMapping(t *testing.T) {
	e := newTestServer(t)
	validID := bson.NewObjectID().Hex()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed user id", http.MethodGet, "/api/user/xyz", "", http.StatusBadRequest, "INVALID_ID"},
		{"malformed project id", http.MethodGet, "/api/projects/123", "", http.StatusBadRequest, "INVALID_ID"},
		{"store unavailable", http.MethodGet, "/api/projects/" + validID, "", http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"list on unavailable store", http.MethodGet, "/api/users", "", http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"bad technology", http.MethodPost, "/api/projects", `{"studentId":"s1","title":"T","technology":"COBOL"}`, http.StatusUnprocessableEntity, "INVALID_ENTITY_DATA"},
		{"negative amount", http.MethodPost, "/api/payments", `{"studentId":"s1","amount":-1}`, http.StatusUnprocessableEntity, "INVALID_ENTITY_DATA"},
		{"messages without user", http.MethodGet, "/api/messages", "", http.StatusUnprocessableEntity, "INVALID_ENTITY_DATA"},
		{"login without email", http.MethodPost, "/api/login", `{}`, http.StatusUnprocessableEntity, "INVALID_ENTITY_DATA"},
		{"unparseable body", http.MethodPost, "/api/register", `{"name":`, http.StatusBadRequest, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec)["code"])
		})
	}
}

func TestRoutes_InvalidEnumListsAllowedValues(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPatch, "/api/projects/"+bson.NewObjectID().Hex(), `{"status":"Done"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "status", body["field"])
	assert.NotEmpty(t, body["allowed"])
}

func TestRoutes_EmptyPatchIsNotUpdated(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/api/projects/", "/api/payments/"} {
		rec := doJSON(e, http.MethodPatch, path+bson.NewObjectID().Hex(), `{}`)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, map[string]any{"updated": false}, decode(t, rec), path)
	}
}

func TestRoutes_SystemEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A&V TechSolutions Backend Running", decode(t, rec)["message"])

	rec = doJSON(e, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode(t, rec)
	assert.Equal(t, "✅ Running", report["backend"])
	assert.Equal(t, "⚠️  Available but not initialized", report["database"])
	assert.Equal(t, "Not Connected", report["connection_status"])

	rec = doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	doJSON(e, http.MethodGet, "/api/projects", "")
	rec = doJSON(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portal_http_requests_total")
	assert.Contains(t, rec.Body.String(), "portal_store_operations_total")
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestRoutes_UploadRoundTrip(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, multipartUpload(t, "report.txt", []byte("final report")))
	require.Equal(t, http.StatusOK, rec.Code)

	url, _ := decode(t, rec)["url"].(string)
	require.True(t, strings.HasPrefix(url, storage.URLPrefix), url)
	assert.True(t, strings.HasSuffix(url, "_report.txt"), url)

	rec = doJSON(e, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "final report", rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/plain"))
}

func TestRoutes_UploadRejections(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, multipartUpload(t, "big.bin", bytes.Repeat([]byte("x"), 2<<10)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "file", decode(t, rec)["field"])

	rec = doJSON(e, http.MethodPost, "/api/upload", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "file", decode(t, rec)["field"])

	rec = doJSON(e, http.MethodGet, "/uploads/missing.pdf", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, "1049600B", bodyLimit(1<<10))
}
