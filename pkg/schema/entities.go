package schema

// Entity hierarchy for a metadata catalog service:
//
//	Service → Database → Schema → Table → Column
//
// Each entity owns its children outright (composition, no shared
// references). Entities are immutable value records built once from wire
// payloads and validated synchronously; field names mirror the catalog's
// JSON contract exactly, including its mixed casing (camelCase fields,
// snake_case aggregate counts).
//
// The declared aggregate counts (column_count, table_count, schema_count)
// are deliberately NOT cross-checked against the actual collection lengths:
// the catalog omits child collections from shallow responses while still
// reporting counts, so divergence is allowed here and consistency is the
// producer's responsibility.

// Tag is a classification tag attached to an entity or column.
type Tag struct {
	TagFQN      string `json:"tagFQN"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Validate checks the tag's required fields.
func (t Tag) Validate() error {
	return requireString("tagFQN", t.TagFQN)
}

// Column describes a single table column. Composite and struct types nest
// child columns recursively; the child tree is finite and acyclic, and each
// child is validated with the identical column rules.
type Column struct {
	Name               string    `json:"name"`
	DataType           string    `json:"dataType,omitempty"`
	DataTypeDisplay    string    `json:"dataTypeDisplay,omitempty"`
	Description        string    `json:"description,omitempty"`
	OrdinalPosition    *int      `json:"ordinalPosition,omitempty"`
	Constraint         string    `json:"constraint,omitempty"`
	Tags               []Tag     `json:"tags,omitempty"`
	Nullable           *bool     `json:"nullable,omitempty"`
	DefaultValue       *Value    `json:"defaultValue,omitempty"`
	Precision          *int      `json:"precision,omitempty"`
	Scale              *int      `json:"scale,omitempty"`
	MaxLength          *int      `json:"maxLength,omitempty"`
	ArrayDataType      string    `json:"arrayDataType,omitempty"`
	DataLength         *int      `json:"dataLength,omitempty"`
	JSONSchema         string    `json:"jsonSchema,omitempty"`
	FullyQualifiedName string    `json:"fullyQualifiedName,omitempty"`
	Children           []Column  `json:"children,omitempty"`
	CustomMetrics      *Value    `json:"customMetrics,omitempty"`
}

// Validate checks required fields and recurses into tags and child columns.
func (c Column) Validate() error {
	if err := requireString("name", c.Name); err != nil {
		return err
	}
	for i, tag := range c.Tags {
		if err := indexField("tags", i, tag.Validate()); err != nil {
			return err
		}
	}
	for i, child := range c.Children {
		if err := indexField("children", i, child.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// Table describes a table or view with its columns plus the catalog's
// optional descriptive and statistical metadata. The profiling, lineage,
// lifecycle and usage bags are opaque pass-through values: the catalog owns
// their shape and this layer only guarantees they survive a round trip.
type Table struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	FullyQualifiedName string   `json:"fullyQualifiedName"`
	TableType          string   `json:"tableType,omitempty"`
	Description        string   `json:"description,omitempty"`
	DisplayName        string   `json:"displayName,omitempty"`
	Owners             []Owner  `json:"owners,omitempty"`
	Tags               []Tag    `json:"tags,omitempty"`
	Columns            []Column `json:"columns,omitempty"`
	ColumnCount        int      `json:"column_count"`

	TableConstraints *Value `json:"tableConstraints,omitempty"`
	PartitionKeys    *Value `json:"partitionKeys,omitempty"`
	DistributionKeys *Value `json:"distributionKeys,omitempty"`
	SortKeys         *Value `json:"sortKeys,omitempty"`
	TableProfile     *Value `json:"tableProfile,omitempty"`
	SampleData       *Value `json:"sampleData,omitempty"`
	UsageSummary     *Value `json:"usageSummary,omitempty"`
	Lineage          *Value `json:"lineage,omitempty"`
	SchemaDefinition string `json:"schemaDefinition,omitempty"`
	Location         string `json:"location,omitempty"`
	LocationPath     string `json:"locationPath,omitempty"`
	FileFormat       string `json:"fileFormat,omitempty"`
	RetentionPeriod  string `json:"retentionPeriod,omitempty"`
	SourceURL        string `json:"sourceUrl,omitempty"`
	Domains          []string `json:"domains,omitempty"`
	DataProducts     []string `json:"dataProducts,omitempty"`
	LifeCycle        *Value   `json:"lifeCycle,omitempty"`
	Certification    *Value   `json:"certification,omitempty"`
	Votes            *Value   `json:"votes,omitempty"`
	TestSuite        string   `json:"testSuite,omitempty"`
	Queries          *Value   `json:"queries,omitempty"`
	CustomMetrics    *Value   `json:"customMetrics,omitempty"`
	SourceHash       string   `json:"sourceHash,omitempty"`
	ProcessedLineage *Value   `json:"processedLineage,omitempty"`
	Joins            *Value   `json:"joins,omitempty"`
	Followers        []string `json:"followers,omitempty"`
}

// Validate checks required fields and recurses into owners, tags and
// columns. ColumnCount is not compared to len(Columns).
func (t Table) Validate() error {
	if err := requireString("id", t.ID); err != nil {
		return err
	}
	if err := requireString("name", t.Name); err != nil {
		return err
	}
	if err := requireString("fullyQualifiedName", t.FullyQualifiedName); err != nil {
		return err
	}
	if err := requireNonNegative("column_count", t.ColumnCount); err != nil {
		return err
	}
	for i, owner := range t.Owners {
		if err := indexField("owners", i, owner.Validate()); err != nil {
			return err
		}
	}
	for i, tag := range t.Tags {
		if err := indexField("tags", i, tag.Validate()); err != nil {
			return err
		}
	}
	for i, col := range t.Columns {
		if err := indexField("columns", i, col.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// Schema is a database schema holding tables.
type Schema struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	FullyQualifiedName string  `json:"fullyQualifiedName"`
	Description        string  `json:"description,omitempty"`
	Tables             []Table `json:"tables,omitempty"`
	TableCount         int     `json:"table_count"`
	Owners             []Owner `json:"owners,omitempty"`
	Tags               []Tag   `json:"tags,omitempty"`
	RetentionPeriod    string  `json:"retentionPeriod,omitempty"`
}

func (s Schema) Validate() error {
	if err := requireString("id", s.ID); err != nil {
		return err
	}
	if err := requireString("name", s.Name); err != nil {
		return err
	}
	if err := requireString("fullyQualifiedName", s.FullyQualifiedName); err != nil {
		return err
	}
	if err := requireNonNegative("table_count", s.TableCount); err != nil {
		return err
	}
	for i, owner := range s.Owners {
		if err := indexField("owners", i, owner.Validate()); err != nil {
			return err
		}
	}
	for i, tag := range s.Tags {
		if err := indexField("tags", i, tag.Validate()); err != nil {
			return err
		}
	}
	for i, table := range s.Tables {
		if err := indexField("tables", i, table.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// Database is a database within a service, holding schemas.
type Database struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	FullyQualifiedName string   `json:"fullyQualifiedName"`
	Description        string   `json:"description,omitempty"`
	Owners             []Owner  `json:"owners,omitempty"`
	Schemas            []Schema `json:"schemas,omitempty"`
	SchemaCount        int      `json:"schema_count"`
	TableCount         int      `json:"table_count"`
	Tags               []Tag    `json:"tags,omitempty"`
	Location           string   `json:"location,omitempty"`
	DatabaseVersion    *Value   `json:"databaseVersion,omitempty"`
	DataProducts       []string `json:"dataProducts,omitempty"`
	UsageSummary       *Value   `json:"usageSummary,omitempty"`
	RetentionPeriod    string   `json:"retentionPeriod,omitempty"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	Domains            []string `json:"domains,omitempty"`
	Votes              *Value   `json:"votes,omitempty"`
	LifeCycle          *Value   `json:"lifeCycle,omitempty"`
	Certification      *Value   `json:"certification,omitempty"`
	Followers          []string `json:"followers,omitempty"`
	SourceHash         string   `json:"sourceHash,omitempty"`
	Default            *bool    `json:"default,omitempty"`
}

func (d Database) Validate() error {
	if err := requireString("id", d.ID); err != nil {
		return err
	}
	if err := requireString("name", d.Name); err != nil {
		return err
	}
	if err := requireString("fullyQualifiedName", d.FullyQualifiedName); err != nil {
		return err
	}
	if err := requireNonNegative("schema_count", d.SchemaCount); err != nil {
		return err
	}
	if err := requireNonNegative("table_count", d.TableCount); err != nil {
		return err
	}
	for i, owner := range d.Owners {
		if err := indexField("owners", i, owner.Validate()); err != nil {
			return err
		}
	}
	for i, tag := range d.Tags {
		if err := indexField("tags", i, tag.Validate()); err != nil {
			return err
		}
	}
	for i, sch := range d.Schemas {
		if err := indexField("schemas", i, sch.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// Service is the outermost entity: a registered database service with its
// connection configuration and the databases it exposes.
type Service struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	ServiceType        string   `json:"serviceType"`
	Description        string   `json:"description,omitempty"`
	DisplayName        string   `json:"displayName,omitempty"`
	FullyQualifiedName string   `json:"fullyQualifiedName,omitempty"`
	Owners             []Owner  `json:"owners,omitempty"`
	Tags               []Tag    `json:"tags,omitempty"`
	Databases          []Database `json:"databases,omitempty"`
	Connection         *Value   `json:"connection,omitempty"`
	Version            *Value   `json:"version,omitempty"`
	IngestionSchedule  *Value   `json:"ingestionSchedule,omitempty"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	Domains            []string `json:"domains,omitempty"`
	DataProducts       []string `json:"dataProducts,omitempty"`
	LifeCycle          *Value   `json:"lifeCycle,omitempty"`
	Certification      *Value   `json:"certification,omitempty"`
	Votes              *Value   `json:"votes,omitempty"`
	Followers          []string `json:"followers,omitempty"`
	SourceHash         string   `json:"sourceHash,omitempty"`
}

func (s Service) Validate() error {
	if err := requireString("id", s.ID); err != nil {
		return err
	}
	if err := requireString("name", s.Name); err != nil {
		return err
	}
	if err := requireString("serviceType", s.ServiceType); err != nil {
		return err
	}
	for i, owner := range s.Owners {
		if err := indexField("owners", i, owner.Validate()); err != nil {
			return err
		}
	}
	for i, tag := range s.Tags {
		if err := indexField("tags", i, tag.Validate()); err != nil {
			return err
		}
	}
	for i, db := range s.Databases {
		if err := indexField("databases", i, db.Validate()); err != nil {
			return err
		}
	}
	return nil
}
