package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() DatabaseServicePayload {
	return DatabaseServicePayload{
		Name:        "production-postgres",
		ServiceType: "PostgreSQL",
		Connection: map[string]Value{
			"type":     String("Postgres"),
			"username": String("postgres_user"),
			"authType": Object(map[string]Value{"password": String("x")}),
			"hostPort": String("localhost:5432"),
			"database": String("production_db"),
		},
	}
}

func TestDatabaseServicePayloadValidate(t *testing.T) {
	t.Run("valid payload with named owner", func(t *testing.T) {
		payload := validPayload()
		owner, err := NewOwner("john.doe", "", OwnerTypeUser)
		require.NoError(t, err)
		payload.Owners = []Owner{owner}

		require.NoError(t, payload.Validate())
		assert.Empty(t, payload.Owners[0].ID)
	})

	t.Run("nameless owner gets a minted id", func(t *testing.T) {
		payload := validPayload()
		owner, err := NewOwner("", "", OwnerTypeTeam)
		require.NoError(t, err)
		payload.Owners = []Owner{owner}

		require.NoError(t, payload.Validate())
		assert.NotEmpty(t, payload.Owners[0].ID)
	})

	t.Run("name boundaries", func(t *testing.T) {
		payload := validPayload()

		payload.Name = strings.Repeat("a", 100)
		assert.NoError(t, payload.Validate())

		payload.Name = strings.Repeat("a", 101)
		err := payload.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "name", ve.Field)
		assert.Equal(t, ReasonOutOfRange, ve.Reason)

		payload.Name = ""
		err = payload.Validate()
		require.Error(t, err)
		ve, ok = AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, ReasonMissingRequired, ve.Reason)
	})

	t.Run("description and display name bounds", func(t *testing.T) {
		payload := validPayload()
		payload.Description = strings.Repeat("d", 500)
		payload.DisplayName = strings.Repeat("n", 100)
		assert.NoError(t, payload.Validate())

		payload.Description = strings.Repeat("d", 501)
		err := payload.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "description", ve.Field)
		assert.Equal(t, ReasonOutOfRange, ve.Reason)
	})

	t.Run("service type must be canonical", func(t *testing.T) {
		payload := validPayload()
		payload.ServiceType = "Postgres9000"

		err := payload.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "serviceType", ve.Field)
		assert.Equal(t, ReasonInvalidEnumValue, ve.Reason)
	})

	t.Run("connection is required", func(t *testing.T) {
		payload := validPayload()
		payload.Connection = nil

		err := payload.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "connection", ve.Field)
		assert.Equal(t, ReasonMissingRequired, ve.Reason)
	})

	t.Run("bad nested owner fails with an indexed path", func(t *testing.T) {
		payload := validPayload()
		payload.Owners = []Owner{{Name: "x", Type: "department"}}

		err := payload.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "owners[0].type", ve.Field)
	})
}

func TestPostgreSQLConnection(t *testing.T) {
	auth := map[string]Value{"password": String("x")}

	t.Run("constructor applies defaults", func(t *testing.T) {
		conn, err := NewPostgreSQLConnection("postgres_user", "localhost:5432", "production_db", auth)
		require.NoError(t, err)
		assert.Equal(t, "Postgres", conn.Type)
		assert.Equal(t, DefaultPostgreSQLScheme, conn.Scheme)
		assert.Equal(t, SSLModePrefer, conn.SSLMode)
	})

	t.Run("unmarshal fills omitted defaults", func(t *testing.T) {
		var conn PostgreSQLConnection
		raw := `{"username":"u","hostPort":"db:5432","database":"d","authType":{"password":"x"}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &conn))
		assert.Equal(t, "Postgres", conn.Type)
		assert.Equal(t, DefaultPostgreSQLScheme, conn.Scheme)
		assert.Equal(t, SSLModePrefer, conn.SSLMode)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := NewPostgreSQLConnection("", "db:5432", "d", auth)
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "username", ve.Field)
		assert.Equal(t, ReasonMissingRequired, ve.Reason)
	})

	t.Run("missing auth type", func(t *testing.T) {
		_, err := NewPostgreSQLConnection("u", "db:5432", "d", nil)
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "authType", ve.Field)
	})

	t.Run("config round trips through the opaque map", func(t *testing.T) {
		conn, err := NewPostgreSQLConnection("u", "db:5432", "d", auth)
		require.NoError(t, err)

		cfg := conn.Config()
		assert.Equal(t, "Postgres", cfg["type"].Text())
		assert.Equal(t, "x", cfg["authType"].Get("password").Text())
		assert.Equal(t, "prefer", cfg["sslMode"].Text())
	})
}

func TestParseSSLMode(t *testing.T) {
	for _, valid := range []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"} {
		mode, err := ParseSSLMode(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, SSLMode(valid), mode)
	}

	_, err := ParseSSLMode("verify-ful")
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidEnumValue, ve.Reason)

	var conn PostgreSQLConnection
	raw := `{"username":"u","hostPort":"db:5432","database":"d","authType":{},"sslMode":"verify-ful"}`
	err = json.Unmarshal([]byte(raw), &conn)
	require.Error(t, err)
	ve, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidEnumValue, ve.Reason)
}

func TestResponseShapes(t *testing.T) {
	t.Run("summary requires a timestamp", func(t *testing.T) {
		summary := MetadataSummary{TotalDatabases: 1}
		err := summary.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "data_extraction_timestamp", ve.Field)
	})

	t.Run("summary rejects negative counts", func(t *testing.T) {
		summary := MetadataSummary{TotalTables: -1, DataExtractionTimestamp: "2026-01-01T00:00:00Z"}
		err := summary.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, ReasonOutOfRange, ve.Reason)
	})

	t.Run("tables response requires service name and count", func(t *testing.T) {
		resp := TablesResponse{Count: 0}
		err := resp.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "service_name", ve.Field)

		resp.ServiceName = "svc"
		assert.NoError(t, resp.Validate())
	})

	t.Run("message response requires a message", func(t *testing.T) {
		err := MessageResponse{}.Validate()
		require.Error(t, err)
	})
}
