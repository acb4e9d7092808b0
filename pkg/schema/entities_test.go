package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func valuePtr(t *testing.T, raw string) *Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return &v
}

func sampleTable(t *testing.T) Table {
	t.Helper()
	return Table{
		ID:                 "t-1",
		Name:               "orders",
		FullyQualifiedName: "prod.sales.public.orders",
		TableType:          "Regular",
		Owners: []Owner{
			{Name: "data-platform", Type: OwnerTypeTeam},
		},
		Tags: []Tag{
			{TagFQN: "PII.Sensitive", Source: "Classification"},
		},
		Columns: []Column{
			{
				Name:            "id",
				DataType:        "BIGINT",
				OrdinalPosition: intPtr(1),
				Constraint:      "PRIMARY_KEY",
				Nullable:        boolPtr(false),
			},
			{
				Name:      "customer",
				DataType:  "STRUCT",
				Precision: intPtr(0),
				Children: []Column{
					{Name: "name", DataType: "VARCHAR", MaxLength: intPtr(120)},
					{Name: "address", DataType: "STRUCT", Children: []Column{
						{Name: "zip", DataType: "VARCHAR"},
					}},
				},
			},
			{
				Name:         "total",
				DataType:     "DECIMAL",
				Precision:    intPtr(12),
				Scale:        intPtr(2),
				DefaultValue: valuePtr(t, `"0.00"`),
				Tags:         []Tag{{TagFQN: "Finance.Amount"}},
			},
		},
		ColumnCount:  3,
		TableProfile: valuePtr(t, `{"rowCount":120345,"columnCount":3}`),
		UsageSummary: valuePtr(t, `{"dailyStats":{"count":17}}`),
		Domains:      []string{"sales"},
		Followers:    []string{"jane.doe"},
	}
}

func sampleService(t *testing.T) Service {
	t.Helper()
	table := sampleTable(t)
	return Service{
		ID:          "svc-1",
		Name:        "production-postgres",
		ServiceType: "PostgreSQL",
		Description: "primary transactional store",
		Owners:      []Owner{{Name: "dba", Type: OwnerTypeTeam}},
		Tags:        []Tag{{TagFQN: "Tier.Tier1"}},
		Connection:  valuePtr(t, `{"config":{"type":"Postgres","hostPort":"localhost:5432"}}`),
		Version:     valuePtr(t, `0.1`),
		Databases: []Database{
			{
				ID:                 "db-1",
				Name:               "sales",
				FullyQualifiedName: "production-postgres.sales",
				SchemaCount:        1,
				TableCount:         1,
				Schemas: []Schema{
					{
						ID:                 "sch-1",
						Name:               "public",
						FullyQualifiedName: "production-postgres.sales.public",
						Tables:             []Table{table},
						TableCount:         1,
					},
				},
			},
		},
	}
}

func TestEntityJSONRoundTrip(t *testing.T) {
	t.Run("service tree", func(t *testing.T) {
		svc := sampleService(t)
		require.NoError(t, svc.Validate())

		data, err := json.Marshal(svc)
		require.NoError(t, err)

		var back Service
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, svc, back)
	})

	t.Run("table", func(t *testing.T) {
		table := sampleTable(t)
		require.NoError(t, table.Validate())

		data, err := json.Marshal(table)
		require.NoError(t, err)

		var back Table
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, table, back)
	})

	t.Run("column tree", func(t *testing.T) {
		col := sampleTable(t).Columns[1]
		data, err := json.Marshal(col)
		require.NoError(t, err)

		var back Column
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, col, back)
	})

	t.Run("wire names follow the catalog contract", func(t *testing.T) {
		data, err := json.Marshal(sampleTable(t))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Contains(t, raw, "fullyQualifiedName")
		assert.Contains(t, raw, "column_count")
		assert.Contains(t, raw, "tableType")
		assert.NotContains(t, raw, "ColumnCount")
	})
}

func TestEntityValidation(t *testing.T) {
	t.Run("column name is required", func(t *testing.T) {
		err := Column{DataType: "INT"}.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "name", ve.Field)
		assert.Equal(t, ReasonMissingRequired, ve.Reason)
	})

	t.Run("nested failures carry the full field path", func(t *testing.T) {
		table := sampleTable(t)
		table.Columns[1].Children[1].Children[0].Name = ""

		err := table.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "columns[1].children[1].children[0].name", ve.Field)
	})

	t.Run("owner failure inside a service tree", func(t *testing.T) {
		svc := sampleService(t)
		svc.Databases[0].Schemas[0].Tables[0].Owners[0] = Owner{Type: "org"}

		err := svc.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "databases[0].schemas[0].tables[0].owners[0].type", ve.Field)
		assert.Equal(t, ReasonInvalidEnumValue, ve.Reason)
	})

	t.Run("tag fqn required", func(t *testing.T) {
		err := Tag{Description: "untitled"}.Validate()
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "tagFQN", ve.Field)
	})
}

// Declared counts are intentionally not reconciled with the collections:
// shallow catalog responses report counts while omitting children, so a
// diverging column_count must be accepted as-is.
func TestDeclaredCountsAreNotCrossChecked(t *testing.T) {
	table := sampleTable(t)
	require.Len(t, table.Columns, 3)
	table.ColumnCount = 5

	assert.NoError(t, table.Validate())

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var back Table
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 5, back.ColumnCount)
	assert.Len(t, back.Columns, 3)
}
