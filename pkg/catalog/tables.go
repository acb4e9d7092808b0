package catalog

import (
	"context"
	"net/url"

	"github.com/catalogwire/catalogwire/pkg/schema"
)

// TableFilter narrows a table listing. Schema only applies together with
// Database; IncludeColumns controls whether column details are mapped.
type TableFilter struct {
	Database       string
	Schema         string
	IncludeColumns bool
}

// ListTables lists the tables of a service, optionally narrowed to one
// database or one schema.
func (c *Client) ListTables(ctx context.Context, serviceName string, filter TableFilter) (schema.TablesResponse, error) {
	query := url.Values{}
	switch {
	case filter.Database != "" && filter.Schema != "":
		query.Set("databaseSchema", serviceName+"."+filter.Database+"."+filter.Schema)
	case filter.Database != "":
		query.Set("database", serviceName+"."+filter.Database)
	default:
		query.Set("service", serviceName)
	}

	var envelope listEnvelope
	if err := c.get(ctx, "tables", query, &envelope); err != nil {
		return schema.TablesResponse{}, err
	}

	tables := make([]schema.Table, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		table, err := shallowTableFromValue(raw, filter.IncludeColumns)
		if err != nil {
			return schema.TablesResponse{}, err
		}
		tables = append(tables, table)
	}

	if c.logger != nil {
		c.logger.Infof("listed %d tables for service %q", len(tables), serviceName)
	}

	return schema.TablesResponse{
		ServiceName: serviceName,
		Filter: schema.TableFilterInfo{
			DatabaseName:   filter.Database,
			SchemaName:     filter.Schema,
			IncludeColumns: filter.IncludeColumns,
		},
		Tables: tables,
		Count:  len(tables),
	}, nil
}
