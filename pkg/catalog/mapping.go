package catalog

import (
	"fmt"

	"github.com/catalogwire/catalogwire/pkg/schema"
)

// Converters from the catalog's raw JSON payloads into the entity model.
// The catalog is loose about shapes: dataType and constraint arrive as
// either a bare string or an object, location and testSuite as entity
// references, and most descriptive bags are optional. Everything opaque is
// carried through as-is.

func valuePtr(v schema.Value) *schema.Value {
	if v.IsNull() {
		return nil
	}
	return &v
}

func intPtr(v schema.Value) *int {
	n, err := v.Int64()
	if err != nil {
		return nil
	}
	i := int(n)
	return &i
}

func boolPtr(v schema.Value) *bool {
	if v.Kind() != schema.KindBool {
		return nil
	}
	b := v.Bool()
	return &b
}

// refName resolves an entity reference to its display name: objects yield
// their "name" field, bare strings yield themselves.
func refName(v schema.Value) string {
	if v.Kind() == schema.KindObject {
		return v.Get("name").Text()
	}
	return v.Text()
}

// nameList collects the names of a reference list (domains, dataProducts,
// followers).
func nameList(v schema.Value) []string {
	items := v.Items()
	if len(items) == 0 {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, refName(item))
	}
	return names
}

func tagsFromValue(v schema.Value) []schema.Tag {
	items := v.Items()
	if len(items) == 0 {
		return nil
	}
	tags := make([]schema.Tag, 0, len(items))
	for _, item := range items {
		tags = append(tags, schema.Tag{
			TagFQN:      item.Get("tagFQN").Text(),
			Description: item.Get("description").Text(),
			Source:      item.Get("source").Text(),
		})
	}
	return tags
}

// ownersFromValue maps catalog owner references, running each through the
// identity derivation rule so a reference is never fully empty.
func ownersFromValue(v schema.Value) ([]schema.Owner, error) {
	items := v.Items()
	if len(items) == 0 {
		return nil, nil
	}
	owners := make([]schema.Owner, 0, len(items))
	for i, item := range items {
		ownerType, err := schema.ParseOwnerType(item.Get("type").Text())
		if err != nil {
			return nil, fmt.Errorf("owner %d: %w", i, err)
		}
		owner, err := schema.NewOwner(item.Get("name").Text(), item.Get("id").Text(), ownerType)
		if err != nil {
			return nil, fmt.Errorf("owner %d: %w", i, err)
		}
		owner.FullyQualifiedName = item.Get("fullyQualifiedName").Text()
		owners = append(owners, owner)
	}
	return owners, nil
}

// columnFromValue maps one catalog column, recursing into children.
func columnFromValue(v schema.Value) schema.Column {
	dataTypeInfo := v.Get("dataType")

	col := schema.Column{
		Name:               v.Get("name").Text(),
		DataTypeDisplay:    v.Get("dataTypeDisplay").Text(),
		Description:        v.Get("description").Text(),
		OrdinalPosition:    intPtr(v.Get("ordinalPosition")),
		Tags:               tagsFromValue(v.Get("tags")),
		Nullable:           boolPtr(v.Get("nullable")),
		DefaultValue:       valuePtr(v.Get("defaultValue")),
		ArrayDataType:      v.Get("arrayDataType").Text(),
		DataLength:         intPtr(v.Get("dataLength")),
		JSONSchema:         v.Get("jsonSchema").Text(),
		FullyQualifiedName: v.Get("fullyQualifiedName").Text(),
		CustomMetrics:      valuePtr(v.Get("customMetrics")),
	}

	if dataTypeInfo.Kind() == schema.KindObject {
		col.DataType = dataTypeInfo.Get("name").Text()
		if col.DataTypeDisplay == "" {
			col.DataTypeDisplay = dataTypeInfo.Get("displayName").Text()
		}
		col.Precision = intPtr(dataTypeInfo.Get("precision"))
		col.Scale = intPtr(dataTypeInfo.Get("scale"))
		col.MaxLength = intPtr(dataTypeInfo.Get("length"))
	} else {
		col.DataType = dataTypeInfo.Text()
	}

	col.Constraint = refName(v.Get("constraint"))

	for _, child := range v.Get("children").Items() {
		col.Children = append(col.Children, columnFromValue(child))
	}
	return col
}

func columnsFromValue(v schema.Value) []schema.Column {
	items := v.Items()
	if len(items) == 0 {
		return nil
	}
	cols := make([]schema.Column, 0, len(items))
	for _, item := range items {
		cols = append(cols, columnFromValue(item))
	}
	return cols
}

// tableFromValue maps a detailed catalog table. The sample data, profile
// and lineage bags are only carried when the extraction asked for them.
func tableFromValue(v schema.Value, opts ExtractOptions) (schema.Table, error) {
	owners, err := ownersFromValue(v.Get("owners"))
	if err != nil {
		return schema.Table{}, err
	}

	columns := columnsFromValue(v.Get("columns"))

	t := schema.Table{
		ID:                 v.Get("id").Text(),
		Name:               v.Get("name").Text(),
		FullyQualifiedName: v.Get("fullyQualifiedName").Text(),
		TableType:          v.Get("tableType").Text(),
		Description:        v.Get("description").Text(),
		DisplayName:        v.Get("displayName").Text(),
		Owners:             owners,
		Tags:               tagsFromValue(v.Get("tags")),
		Columns:            columns,
		ColumnCount:        v.Get("columns").Len(),

		TableConstraints: valuePtr(v.Get("tableConstraints")),
		DistributionKeys: valuePtr(v.Get("distributionKey")),
		SortKeys:         valuePtr(v.Get("sortKey")),
		UsageSummary:     valuePtr(v.Get("usageSummary")),
		SchemaDefinition: v.Get("schemaDefinition").Text(),
		Location:         refName(v.Get("location")),
		LocationPath:     v.Get("locationPath").Text(),
		FileFormat:       v.Get("fileFormat").Text(),
		RetentionPeriod:  v.Get("retentionPeriod").Text(),
		SourceURL:        v.Get("sourceUrl").Text(),
		Domains:          nameList(v.Get("domains")),
		DataProducts:     nameList(v.Get("dataProducts")),
		LifeCycle:        valuePtr(v.Get("lifeCycle")),
		Certification:    valuePtr(v.Get("certification")),
		Votes:            valuePtr(v.Get("votes")),
		TestSuite:        refName(v.Get("testSuite")),
		Queries:          valuePtr(v.Get("queries")),
		CustomMetrics:    valuePtr(v.Get("customMetrics")),
		SourceHash:       v.Get("sourceHash").Text(),
		ProcessedLineage: valuePtr(v.Get("processedLineage")),
		Joins:            valuePtr(v.Get("joins")),
		Followers:        nameList(v.Get("followers")),
	}

	if partition := v.Get("tablePartition"); partition.Kind() == schema.KindObject {
		t.PartitionKeys = valuePtr(partition.Get("columns"))
	}
	if opts.IncludeProfiles {
		t.TableProfile = valuePtr(v.Get("tableProfile"))
	}
	if opts.IncludeSampleData {
		t.SampleData = valuePtr(v.Get("sampleData"))
	}
	if opts.IncludeLineage {
		t.Lineage = valuePtr(v.Get("lineage"))
	}
	return t, nil
}

// shallowTableFromValue maps a table from a list response: core identity,
// owners, tags and optionally columns, without the descriptive bags.
func shallowTableFromValue(v schema.Value, includeColumns bool) (schema.Table, error) {
	owners, err := ownersFromValue(v.Get("owners"))
	if err != nil {
		return schema.Table{}, err
	}

	t := schema.Table{
		ID:                 v.Get("id").Text(),
		Name:               v.Get("name").Text(),
		FullyQualifiedName: v.Get("fullyQualifiedName").Text(),
		TableType:          v.Get("tableType").Text(),
		Description:        v.Get("description").Text(),
		DisplayName:        v.Get("displayName").Text(),
		Owners:             owners,
		Tags:               tagsFromValue(v.Get("tags")),
		ColumnCount:        v.Get("columns").Len(),
	}
	if includeColumns {
		t.Columns = columnsFromValue(v.Get("columns"))
	}
	return t, nil
}

func schemaFromValue(v schema.Value) (schema.Schema, error) {
	owners, err := ownersFromValue(v.Get("owners"))
	if err != nil {
		return schema.Schema{}, err
	}
	return schema.Schema{
		ID:                 v.Get("id").Text(),
		Name:               v.Get("name").Text(),
		FullyQualifiedName: v.Get("fullyQualifiedName").Text(),
		Description:        v.Get("description").Text(),
		Owners:             owners,
		Tags:               tagsFromValue(v.Get("tags")),
		RetentionPeriod:    v.Get("retentionPeriod").Text(),
	}, nil
}

func databaseFromValue(v schema.Value) (schema.Database, error) {
	owners, err := ownersFromValue(v.Get("owners"))
	if err != nil {
		return schema.Database{}, err
	}
	return schema.Database{
		ID:                 v.Get("id").Text(),
		Name:               v.Get("name").Text(),
		FullyQualifiedName: v.Get("fullyQualifiedName").Text(),
		Description:        v.Get("description").Text(),
		Owners:             owners,
		Tags:               tagsFromValue(v.Get("tags")),
		Location:           refName(v.Get("location")),
		DatabaseVersion:    valuePtr(v.Get("version")),
		DataProducts:       nameList(v.Get("dataProducts")),
		UsageSummary:       valuePtr(v.Get("usageSummary")),
		RetentionPeriod:    v.Get("retentionPeriod").Text(),
		SourceURL:          v.Get("sourceUrl").Text(),
		Domains:            nameList(v.Get("domains")),
		Votes:              valuePtr(v.Get("votes")),
		LifeCycle:          valuePtr(v.Get("lifeCycle")),
		Certification:      valuePtr(v.Get("certification")),
		Followers:          nameList(v.Get("followers")),
		SourceHash:         v.Get("sourceHash").Text(),
		Default:            boolPtr(v.Get("default")),
	}, nil
}

func serviceFromValue(v schema.Value) (schema.Service, error) {
	owners, err := ownersFromValue(v.Get("owners"))
	if err != nil {
		return schema.Service{}, err
	}
	return schema.Service{
		ID:                 v.Get("id").Text(),
		Name:               v.Get("name").Text(),
		ServiceType:        v.Get("serviceType").Text(),
		Description:        v.Get("description").Text(),
		DisplayName:        v.Get("displayName").Text(),
		FullyQualifiedName: v.Get("fullyQualifiedName").Text(),
		Owners:             owners,
		Tags:               tagsFromValue(v.Get("tags")),
		Connection:         valuePtr(v.Get("connection")),
		Version:            valuePtr(v.Get("version")),
		IngestionSchedule:  valuePtr(v.Get("ingestionSchedule")),
		SourceURL:          v.Get("sourceUrl").Text(),
		Domains:            nameList(v.Get("domains")),
		DataProducts:       nameList(v.Get("dataProducts")),
		LifeCycle:          valuePtr(v.Get("lifeCycle")),
		Certification:      valuePtr(v.Get("certification")),
		Votes:              valuePtr(v.Get("votes")),
		Followers:          nameList(v.Get("followers")),
		SourceHash:         v.Get("sourceHash").Text(),
	}, nil
}
