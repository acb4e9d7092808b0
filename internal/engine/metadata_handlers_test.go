package engine

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogwire/catalogwire/pkg/catalog"
	"github.com/catalogwire/catalogwire/pkg/config"
	"github.com/catalogwire/catalogwire/pkg/schema"
)

// newTestServer wires an engine to a fake catalog without starting the
// HTTP listener.
func newTestServer(catalogURL string) *Server {
	e := NewEngine(config.New())
	e.client = catalog.New(catalogURL)
	return NewServer(e)
}

// stubCatalog answers the minimal catalog surface the handlers exercise.
func stubCatalog(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("GET /services/databaseServices/name/analytics-pg", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fields") == "" {
			// Existence pre-check during creation.
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":          "svc-1",
			"name":        "analytics-pg",
			"serviceType": "PostgreSQL",
		})
	})
	mux.HandleFunc("GET /services/databaseServices/name/missing-svc", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "service not found"})
	})
	mux.HandleFunc("POST /services/databaseServices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"id": "svc-1", "name": "analytics-pg"})
	})
	mux.HandleFunc("GET /databases", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})
	mux.HandleFunc("GET /tables", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{
			map[string]any{
				"id":                 "tbl-1",
				"name":               "orders",
				"fullyQualifiedName": "analytics-pg.sales.public.orders",
				"columns": []any{
					map[string]any{"name": "id", "dataType": "BIGINT"},
				},
			},
		}})
	})
	mux.HandleFunc("GET /system/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "1.5.0"})
	})

	return httptest.NewServer(mux)
}

func createServiceBody(t *testing.T) string {
	t.Helper()
	conn, err := schema.NewPostgreSQLConnection("reader", "db.internal:5432", "analytics", map[string]schema.Value{
		"password": schema.String("secret"),
	})
	require.NoError(t, err)

	body, err := json.Marshal(schema.DatabaseServicePayload{
		Name:        "analytics-pg",
		ServiceType: "PostgreSQL",
		Connection:  conn.Config(),
	})
	require.NoError(t, err)
	return string(body)
}

func TestCreateServiceEndpoint(t *testing.T) {
	upstream := stubCatalog(t)
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	t.Run("creates a service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/services", strings.NewReader(createServiceBody(t)))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var msg schema.MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.Contains(t, msg.Message, "created successfully")
	})

	t.Run("rejects an unknown service type", func(t *testing.T) {
		body := strings.Replace(createServiceBody(t), "PostgreSQL", "AccessDB", 1)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/services", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Validation failed", errResp.Error)
		assert.Contains(t, errResp.Message, "serviceType")
		assert.Equal(t, StatusError, errResp.Status)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/services", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExtractMetadataEndpoint(t *testing.T) {
	upstream := stubCatalog(t)
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	t.Run("returns the extraction for a known service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/services/analytics-pg/metadata", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp schema.DatabaseMetadataResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "analytics-pg", resp.Service.Name)
		assert.Equal(t, 0, resp.Summary.TotalDatabases)
		assert.NotEmpty(t, resp.Summary.DataExtractionTimestamp)
	})

	t.Run("maps a missing service to 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/services/missing-svc/metadata", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Failed to extract metadata", errResp.Error)
	})
}

func TestListTablesEndpoint(t *testing.T) {
	upstream := stubCatalog(t)
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	t.Run("lists tables with columns by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/services/analytics-pg/tables", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp schema.TablesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "analytics-pg", resp.ServiceName)
		assert.Equal(t, 1, resp.Count)
		assert.True(t, resp.Filter.IncludeColumns)
		require.Len(t, resp.Tables, 1)
		assert.Len(t, resp.Tables[0].Columns, 1)
	})

	t.Run("can drop columns", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/services/analytics-pg/tables?include_columns=false", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp schema.TablesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Filter.IncludeColumns)
		require.Len(t, resp.Tables, 1)
		assert.Empty(t, resp.Tables[0].Columns)
		assert.Equal(t, 1, resp.Tables[0].ColumnCount)
	})

	t.Run("rejects schema filter without database", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/services/analytics-pg/tables?schema_name=public", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	upstream := stubCatalog(t)
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "catalogwire", resp["service"])
	assert.Equal(t, true, resp["catalog_healthy"])
	assert.Equal(t, "1.5.0", resp["catalog_version"])
}
