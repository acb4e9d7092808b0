package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/catalogwire/catalogwire/pkg/catalog"
	"github.com/catalogwire/catalogwire/pkg/schema"
)

// MetadataHandlers contains the handlers for the database-service endpoints
type MetadataHandlers struct {
	engine *Engine
}

// NewMetadataHandlers creates a new metadata handlers instance
func NewMetadataHandlers(engine *Engine) *MetadataHandlers {
	return &MetadataHandlers{
		engine: engine,
	}
}

// CreateService handles POST /api/v1/services
func (mh *MetadataHandlers) CreateService(w http.ResponseWriter, r *http.Request) {
	mh.engine.TrackOperation()
	defer mh.engine.UntrackOperation()

	var payload schema.DatabaseServicePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if verr, ok := schema.AsValidationError(err); ok {
			mh.writeErrorResponse(w, http.StatusBadRequest, "Validation failed", verr.Error())
			return
		}
		mh.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if mh.engine.logger != nil {
		mh.engine.logger.Infof("Service creation request: %s, type: %s", payload.Name, payload.ServiceType)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	msg, err := mh.engine.Catalog().CreateDatabaseService(ctx, payload)
	if err != nil {
		mh.handleServiceError(w, err, "Failed to create database service")
		return
	}

	mh.writeJSONResponse(w, http.StatusOK, msg)
}

// ExtractMetadata handles GET /api/v1/services/{service_name}/metadata
func (mh *MetadataHandlers) ExtractMetadata(w http.ResponseWriter, r *http.Request) {
	mh.engine.TrackOperation()
	defer mh.engine.UntrackOperation()

	vars := mux.Vars(r)
	serviceName := vars["service_name"]
	if serviceName == "" {
		mh.writeErrorResponse(w, http.StatusBadRequest, "service_name is required", "")
		return
	}

	opts := catalog.ExtractOptions{
		IncludeSampleData: parseBoolParam(r, "include_sample_data", false),
		IncludeProfiles:   parseBoolParam(r, "include_table_profiles", false),
		IncludeLineage:    parseBoolParam(r, "include_lineage", false),
	}

	if mh.engine.logger != nil {
		mh.engine.logger.Infof("Metadata extraction request: %s", serviceName)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	response, err := mh.engine.Catalog().ExtractDatabaseMetadata(ctx, serviceName, opts)
	if err != nil {
		mh.handleServiceError(w, err, "Failed to extract metadata")
		return
	}

	mh.writeJSONResponse(w, http.StatusOK, response)
}

// ListTables handles GET /api/v1/services/{service_name}/tables
func (mh *MetadataHandlers) ListTables(w http.ResponseWriter, r *http.Request) {
	mh.engine.TrackOperation()
	defer mh.engine.UntrackOperation()

	vars := mux.Vars(r)
	serviceName := vars["service_name"]
	if serviceName == "" {
		mh.writeErrorResponse(w, http.StatusBadRequest, "service_name is required", "")
		return
	}

	schemaName := r.URL.Query().Get("schema_name")
	databaseName := r.URL.Query().Get("database_name")
	if schemaName != "" && databaseName == "" {
		mh.writeErrorResponse(w, http.StatusBadRequest, "schema_name requires database_name", "")
		return
	}

	filter := catalog.TableFilter{
		Database:       databaseName,
		Schema:         schemaName,
		IncludeColumns: parseBoolParam(r, "include_columns", true),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := mh.engine.Catalog().ListTables(ctx, serviceName, filter)
	if err != nil {
		mh.handleServiceError(w, err, "Failed to list tables")
		return
	}

	mh.writeJSONResponse(w, http.StatusOK, response)
}

// parseBoolParam reads a boolean query parameter with a default
func parseBoolParam(r *http.Request, name string, fallback bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// handleServiceError maps validation and catalog errors to HTTP status codes
func (mh *MetadataHandlers) handleServiceError(w http.ResponseWriter, err error, message string) {
	mh.engine.trackError()

	if verr, ok := schema.AsValidationError(err); ok {
		mh.writeErrorResponse(w, http.StatusBadRequest, "Validation failed", verr.Error())
		return
	}

	if apiErr, ok := catalog.AsAPIError(err); ok {
		switch {
		case apiErr.Status == http.StatusNotFound:
			mh.writeErrorResponse(w, http.StatusNotFound, message, apiErr.Error())
		case apiErr.Status >= 400 && apiErr.Status < 500:
			mh.writeErrorResponse(w, apiErr.Status, message, apiErr.Error())
		default:
			mh.writeErrorResponse(w, http.StatusBadGateway, message, apiErr.Error())
		}
		return
	}

	mh.writeErrorResponse(w, http.StatusInternalServerError, message, err.Error())
}

func (mh *MetadataHandlers) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		if mh.engine.logger != nil {
			mh.engine.logger.Errorf("Failed to encode JSON response: %v", err)
		}
	}
}

func (mh *MetadataHandlers) writeErrorResponse(w http.ResponseWriter, statusCode int, message, details string) {
	if mh.engine.logger != nil {
		if statusCode >= 500 {
			mh.engine.logger.Errorf("HTTP %d - %s: %s", statusCode, message, details)
		} else {
			mh.engine.logger.Warnf("HTTP %d - %s: %s", statusCode, message, details)
		}
	}

	response := ErrorResponse{
		Error:   message,
		Message: details,
		Status:  StatusError,
	}
	mh.writeJSONResponse(w, statusCode, response)
}
