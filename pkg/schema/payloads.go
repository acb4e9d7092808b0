package schema

import (
	"encoding/json"

	"github.com/catalogwire/catalogwire/pkg/servicetypes"
)

// SSLMode is the PostgreSQL-standard connection encryption/verification
// level.
type SSLMode string

const (
	SSLModeDisable    SSLMode = "disable"
	SSLModeAllow      SSLMode = "allow"
	SSLModePrefer     SSLMode = "prefer"
	SSLModeRequire    SSLMode = "require"
	SSLModeVerifyCA   SSLMode = "verify-ca"
	SSLModeVerifyFull SSLMode = "verify-full"
)

var sslModeNames = []string{
	string(SSLModeDisable),
	string(SSLModeAllow),
	string(SSLModePrefer),
	string(SSLModeRequire),
	string(SSLModeVerifyCA),
	string(SSLModeVerifyFull),
}

// ParseSSLMode coerces a wire string into an SSLMode.
func ParseSSLMode(s string) (SSLMode, error) {
	if err := inEnum("sslMode", s, sslModeNames); err != nil {
		return "", err
	}
	return SSLMode(s), nil
}

// DefaultPostgreSQLScheme is the SQLAlchemy-style driver scheme the catalog
// expects for PostgreSQL connections.
const DefaultPostgreSQLScheme = "postgresql+psycopg2"

// PostgreSQLConnection is the connection configuration sub-shape for
// PostgreSQL services. Type, Scheme and SSLMode carry catalog defaults when
// left empty; AuthType is an opaque map the catalog interprets (password,
// IAM, azure, ...).
type PostgreSQLConnection struct {
	Type     string           `json:"type"`
	Scheme   string           `json:"scheme"`
	Username string           `json:"username"`
	AuthType map[string]Value `json:"authType"`
	HostPort string           `json:"hostPort"`
	Database string           `json:"database"`
	SSLMode  SSLMode          `json:"sslMode,omitempty"`
}

// NewPostgreSQLConnection builds a connection with the catalog defaults
// applied and validates it.
func NewPostgreSQLConnection(username, hostPort, database string, authType map[string]Value) (PostgreSQLConnection, error) {
	c := PostgreSQLConnection{
		Type:     "Postgres",
		Scheme:   DefaultPostgreSQLScheme,
		Username: username,
		AuthType: authType,
		HostPort: hostPort,
		Database: database,
		SSLMode:  SSLModePrefer,
	}
	if err := c.Validate(); err != nil {
		return PostgreSQLConnection{}, err
	}
	return c, nil
}

// applyDefaults fills the catalog defaults for fields the payload omitted.
func (c *PostgreSQLConnection) applyDefaults() {
	if c.Type == "" {
		c.Type = "Postgres"
	}
	if c.Scheme == "" {
		c.Scheme = DefaultPostgreSQLScheme
	}
	if c.SSLMode == "" {
		c.SSLMode = SSLModePrefer
	}
}

// Validate checks required fields and the SSL mode enum.
func (c PostgreSQLConnection) Validate() error {
	if err := requireString("username", c.Username); err != nil {
		return err
	}
	if err := requireString("hostPort", c.HostPort); err != nil {
		return err
	}
	if err := requireString("database", c.Database); err != nil {
		return err
	}
	if c.AuthType == nil {
		return &ValidationError{Field: "authType", Reason: ReasonMissingRequired}
	}
	if c.SSLMode != "" {
		if _, err := ParseSSLMode(string(c.SSLMode)); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON decodes a connection, applies defaults for omitted fields
// and validates, so a parsed connection obeys the same invariants as a
// constructed one.
func (c *PostgreSQLConnection) UnmarshalJSON(data []byte) error {
	type wire PostgreSQLConnection
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded := PostgreSQLConnection(w)
	decoded.applyDefaults()
	if err := decoded.Validate(); err != nil {
		return err
	}
	*c = decoded
	return nil
}

// Config renders the connection as the opaque map a service-creation
// payload carries.
func (c PostgreSQLConnection) Config() map[string]Value {
	cfg := map[string]Value{
		"type":     String(c.Type),
		"scheme":   String(c.Scheme),
		"username": String(c.Username),
		"authType": Object(c.AuthType),
		"hostPort": String(c.HostPort),
		"database": String(c.Database),
	}
	if c.SSLMode != "" {
		cfg["sslMode"] = String(string(c.SSLMode))
	}
	return cfg
}

// Payload field bounds for service creation.
const (
	MaxServiceNameLength = 100
	MaxDisplayNameLength = 100
	MaxDescriptionLength = 500
)

// DatabaseServicePayload is the request body for registering a database
// service in the catalog. The connection map is opaque: its shape depends on
// serviceType and the catalog validates it, not this layer.
type DatabaseServicePayload struct {
	Name        string           `json:"name"`
	ServiceType string           `json:"serviceType"`
	Connection  map[string]Value `json:"connection"`
	Description string           `json:"description,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Owners      []Owner          `json:"owners,omitempty"`
}

// Validate checks, in order: required presence, length bounds, enum
// membership, then nested owner references.
func (p DatabaseServicePayload) Validate() error {
	if err := requireString("name", p.Name); err != nil {
		return err
	}
	if err := requireString("serviceType", p.ServiceType); err != nil {
		return err
	}
	if p.Connection == nil {
		return &ValidationError{Field: "connection", Reason: ReasonMissingRequired}
	}

	if err := boundString("name", p.Name, MaxServiceNameLength); err != nil {
		return err
	}
	if err := boundString("description", p.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := boundString("displayName", p.DisplayName, MaxDisplayNameLength); err != nil {
		return err
	}

	if !servicetypes.IsValid(p.ServiceType) {
		return &ValidationError{
			Field:  "serviceType",
			Reason: ReasonInvalidEnumValue,
			Detail: "must be one of: " + servicetypes.NameList(),
		}
	}

	for i, tag := range p.Tags {
		if err := indexField("tags", i, requireString("", tag)); err != nil {
			return err
		}
	}
	for i, owner := range p.Owners {
		if err := indexField("owners", i, owner.Validate()); err != nil {
			return err
		}
	}
	return nil
}
