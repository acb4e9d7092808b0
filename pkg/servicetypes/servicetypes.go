package servicetypes

import (
	"sort"
	"strings"
)

// ServiceType is the canonical identifier for a database-service kind the
// catalog accepts. The values match the catalog's serviceType strings
// exactly, so they go onto the wire unchanged.
type ServiceType string

const (
	// Relational / warehouse engines
	MySQL      ServiceType = "MySQL"
	PostgreSQL ServiceType = "PostgreSQL"
	Oracle     ServiceType = "Oracle"
	MSSQL      ServiceType = "MSSQL"
	ClickHouse ServiceType = "Clickhouse"
	BigQuery   ServiceType = "BigQuery"
	Snowflake  ServiceType = "Snowflake"
	Redshift   ServiceType = "Redshift"

	// NoSQL
	MongoDB   ServiceType = "MongoDB"
	Cassandra ServiceType = "Cassandra"

	// Query engines / lakehouse
	Databricks ServiceType = "Databricks"
	Athena     ServiceType = "Athena"
	Hive       ServiceType = "Hive"
	Presto     ServiceType = "Presto"
	Trino      ServiceType = "Trino"
)

// Capability describes what the wrapper knows about a service type: the
// SQLAlchemy-style driver scheme the catalog defaults connections to, the
// conventional port, and the aliases users type for it.
type Capability struct {
	// Human-friendly product name, e.g. "PostgreSQL".
	Name string `json:"name"`

	// Canonical serviceType string sent to the catalog.
	ID ServiceType `json:"id"`

	// Default driver scheme for the connection configuration.
	DriverScheme string `json:"driverScheme"`

	// Conventional port, 0 when the engine has no fixed default.
	DefaultPort int `json:"defaultPort,omitempty"`

	// Whether the engine exposes the database/schema/table hierarchy.
	Relational bool `json:"relational"`

	// Accepted spellings besides the canonical ID.
	Aliases []string `json:"aliases,omitempty"`
}

// All is the registry of accepted service types keyed by canonical ID.
var All = map[ServiceType]Capability{
	MySQL: {
		Name:         "MySQL",
		ID:           MySQL,
		DriverScheme: "mysql+pymysql",
		DefaultPort:  3306,
		Relational:   true,
		Aliases:      []string{"mariadb", "aurora-mysql"},
	},
	PostgreSQL: {
		Name:         "PostgreSQL",
		ID:           PostgreSQL,
		DriverScheme: "postgresql+psycopg2",
		DefaultPort:  5432,
		Relational:   true,
		Aliases:      []string{"postgres", "pgsql"},
	},
	Oracle: {
		Name:         "Oracle",
		ID:           Oracle,
		DriverScheme: "oracle+cx_oracle",
		DefaultPort:  1521,
		Relational:   true,
	},
	MSSQL: {
		Name:         "Microsoft SQL Server",
		ID:           MSSQL,
		DriverScheme: "mssql+pytds",
		DefaultPort:  1433,
		Relational:   true,
		Aliases:      []string{"sqlserver"},
	},
	ClickHouse: {
		Name:         "ClickHouse",
		ID:           ClickHouse,
		DriverScheme: "clickhouse+http",
		DefaultPort:  8123,
		Relational:   true,
	},
	BigQuery: {
		Name:         "BigQuery",
		ID:           BigQuery,
		DriverScheme: "bigquery",
		Relational:   true,
	},
	Snowflake: {
		Name:         "Snowflake",
		ID:           Snowflake,
		DriverScheme: "snowflake",
		Relational:   true,
	},
	Redshift: {
		Name:         "Amazon Redshift",
		ID:           Redshift,
		DriverScheme: "redshift+psycopg2",
		DefaultPort:  5439,
		Relational:   true,
	},
	MongoDB: {
		Name:         "MongoDB",
		ID:           MongoDB,
		DriverScheme: "mongodb",
		DefaultPort:  27017,
	},
	Cassandra: {
		Name:         "Cassandra",
		ID:           Cassandra,
		DriverScheme: "cassandra",
		DefaultPort:  9042,
	},
	Databricks: {
		Name:         "Databricks",
		ID:           Databricks,
		DriverScheme: "databricks+connector",
		DefaultPort:  443,
		Relational:   true,
	},
	Athena: {
		Name:         "Amazon Athena",
		ID:           Athena,
		DriverScheme: "awsathena+rest",
		Relational:   true,
	},
	Hive: {
		Name:         "Apache Hive",
		ID:           Hive,
		DriverScheme: "hive",
		DefaultPort:  10000,
		Relational:   true,
	},
	Presto: {
		Name:         "Presto",
		ID:           Presto,
		DriverScheme: "presto",
		DefaultPort:  8080,
		Relational:   true,
	},
	Trino: {
		Name:         "Trino",
		ID:           Trino,
		DriverScheme: "trino",
		DefaultPort:  8080,
		Relational:   true,
	},
}

// Get returns the capability entry for a canonical service type.
func Get(id ServiceType) (Capability, bool) {
	entry, ok := All[id]
	return entry, ok
}

// Parse maps a user-supplied spelling (canonical ID, alias, any casing) to
// its canonical service type.
func Parse(s string) (ServiceType, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return "", false
	}
	for id, entry := range All {
		if strings.ToLower(string(id)) == needle {
			return id, true
		}
		for _, alias := range entry.Aliases {
			if strings.ToLower(alias) == needle {
				return id, true
			}
		}
	}
	return "", false
}

// IsValid reports whether s is exactly one of the canonical serviceType
// strings the catalog accepts. Unlike Parse it does not fold case or
// aliases: payloads must carry the canonical spelling.
func IsValid(s string) bool {
	_, ok := All[ServiceType(s)]
	return ok
}

// Names returns the canonical serviceType strings, sorted.
func Names() []string {
	names := make([]string, 0, len(All))
	for id := range All {
		names = append(names, string(id))
	}
	sort.Strings(names)
	return names
}

// NameList returns the canonical serviceType strings as one comma-separated
// string, for error messages.
func NameList() string {
	return strings.Join(Names(), ", ")
}
