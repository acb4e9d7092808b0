package schema

// Response shapes are pure structural containers: they hold already-computed
// values and validate only presence and range of their own required fields.
// None of them recompute or cross-check counts against the nested entity
// tree; the producer of the response owns that consistency.

// MetadataSummary aggregates counts for a full service extraction.
type MetadataSummary struct {
	TotalDatabases          int    `json:"total_databases"`
	TotalSchemas            int    `json:"total_schemas"`
	TotalTables             int    `json:"total_tables"`
	TotalColumns            int    `json:"total_columns"`
	TotalViews              int    `json:"total_views"`
	TotalOwners             int    `json:"total_owners"`
	TotalTags               int    `json:"total_tags"`
	DataExtractionTimestamp string `json:"data_extraction_timestamp"`
}

func (s MetadataSummary) Validate() error {
	for _, c := range []struct {
		field string
		value int
	}{
		{"total_databases", s.TotalDatabases},
		{"total_schemas", s.TotalSchemas},
		{"total_tables", s.TotalTables},
		{"total_columns", s.TotalColumns},
		{"total_views", s.TotalViews},
		{"total_owners", s.TotalOwners},
		{"total_tags", s.TotalTags},
	} {
		if err := requireNonNegative(c.field, c.value); err != nil {
			return err
		}
	}
	return requireString("data_extraction_timestamp", s.DataExtractionTimestamp)
}

// DatabaseMetadataResponse is the full extraction result for one service.
type DatabaseMetadataResponse struct {
	Service   Service         `json:"service"`
	Databases []Database      `json:"databases"`
	Summary   MetadataSummary `json:"summary"`
}

func (r DatabaseMetadataResponse) Validate() error {
	if err := prefixField("service", r.Service.Validate()); err != nil {
		return err
	}
	for i, db := range r.Databases {
		if err := indexField("databases", i, db.Validate()); err != nil {
			return err
		}
	}
	return prefixField("summary", r.Summary.Validate())
}

// TableFilterInfo echoes the filters a table listing was produced with.
type TableFilterInfo struct {
	DatabaseName   string `json:"database_name,omitempty"`
	SchemaName     string `json:"schema_name,omitempty"`
	IncludeColumns bool   `json:"include_columns"`
}

// TablesResponse is a filtered table listing for one service.
type TablesResponse struct {
	ServiceName string          `json:"service_name"`
	Filter      TableFilterInfo `json:"filter"`
	Tables      []Table         `json:"tables"`
	Count       int             `json:"count"`
}

func (r TablesResponse) Validate() error {
	if err := requireString("service_name", r.ServiceName); err != nil {
		return err
	}
	if err := requireNonNegative("count", r.Count); err != nil {
		return err
	}
	for i, table := range r.Tables {
		if err := indexField("tables", i, table.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// MessageResponse is a plain human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

func (r MessageResponse) Validate() error {
	return requireString("message", r.Message)
}
