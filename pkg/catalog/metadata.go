package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/catalogwire/catalogwire/pkg/schema"
)

// ExtractOptions selects which heavyweight table bags a full extraction
// carries. All off by default.
type ExtractOptions struct {
	IncludeSampleData bool
	IncludeProfiles   bool
	IncludeLineage    bool
}

// buildIncludeParams assembles the include parameter for a detailed table
// fetch.
func buildIncludeParams(opts ExtractOptions) string {
	params := []string{
		"all", "joins", "tags", "owner", "followers", "extension", "domain",
		"dataProducts", "votes", "lifeCycle", "certification", "sourceHash",
	}
	if opts.IncludeSampleData {
		params = append(params, "sampleData")
	}
	if opts.IncludeProfiles {
		params = append(params, "tableProfile", "profile")
	}
	if opts.IncludeLineage {
		params = append(params, "lineage", "dataProducts", "upstream", "downstream")
	}
	return strings.Join(params, ",")
}

// ExtractDatabaseMetadata walks the full entity tree of a service: the
// service itself, its databases, their schemas, and every table with
// detailed metadata, and computes the aggregate summary.
func (c *Client) ExtractDatabaseMetadata(ctx context.Context, serviceName string, opts ExtractOptions) (schema.DatabaseMetadataResponse, error) {
	service, err := c.GetDatabaseService(ctx, serviceName)
	if err != nil {
		return schema.DatabaseMetadataResponse{}, err
	}

	if c.logger != nil {
		c.logger.Infof("extracting metadata for service %q (type %s)", service.Name, service.ServiceType)
	}

	databases, err := c.walkDatabases(ctx, serviceName, opts)
	if err != nil {
		return schema.DatabaseMetadataResponse{}, err
	}

	response := schema.DatabaseMetadataResponse{
		Service:   service,
		Databases: databases,
		Summary:   buildSummary(service, databases),
	}

	if c.logger != nil {
		c.logger.WithFields(map[string]string{
			"service":   serviceName,
			"databases": strconv.Itoa(response.Summary.TotalDatabases),
			"schemas":   strconv.Itoa(response.Summary.TotalSchemas),
			"tables":    strconv.Itoa(response.Summary.TotalTables),
			"columns":   strconv.Itoa(response.Summary.TotalColumns),
		}).Info("metadata extraction completed")
	}
	return response, nil
}

// walkDatabases lists a service's databases and descends into schemas and
// tables, filling the per-entity counts as it goes. Listing failures below
// the database level degrade to empty children rather than aborting the
// extraction.
func (c *Client) walkDatabases(ctx context.Context, serviceName string, opts ExtractOptions) ([]schema.Database, error) {
	query := url.Values{
		"service": {serviceName},
		"include": {"all,tags,owners,domain,dataProducts"},
		"fields":  {"owners,tags,location,version,usageSummary,retentionPeriod,sourceUrl,domains,dataProducts,votes,lifeCycle,certification,followers,sourceHash,default"},
	}

	var envelope listEnvelope
	if err := c.get(ctx, "databases", query, &envelope); err != nil {
		return nil, err
	}

	databases := make([]schema.Database, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		db, err := databaseFromValue(raw)
		if err != nil {
			return nil, err
		}

		schemas, err := c.walkSchemas(ctx, db.FullyQualifiedName, opts)
		if err != nil {
			if c.logger != nil {
				c.logger.Warnf("could not list schemas for database %s: %v", db.FullyQualifiedName, err)
			}
			schemas = nil
		}

		db.Schemas = schemas
		db.SchemaCount = len(schemas)
		for _, sch := range schemas {
			db.TableCount += sch.TableCount
		}
		databases = append(databases, db)
	}
	return databases, nil
}

func (c *Client) walkSchemas(ctx context.Context, databaseFQN string, opts ExtractOptions) ([]schema.Schema, error) {
	query := url.Values{
		"database": {databaseFQN},
		"include":  {"all,tags,owners"},
		"fields":   {"owners,tags,retentionPeriod"},
	}

	var envelope listEnvelope
	if err := c.get(ctx, "databaseSchemas", query, &envelope); err != nil {
		return nil, err
	}

	schemas := make([]schema.Schema, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		sch, err := schemaFromValue(raw)
		if err != nil {
			return nil, err
		}

		tables, err := c.walkTables(ctx, sch.FullyQualifiedName, opts)
		if err != nil {
			if c.logger != nil {
				c.logger.Warnf("could not list tables for schema %s: %v", sch.FullyQualifiedName, err)
			}
			tables = nil
		}

		sch.Tables = tables
		sch.TableCount = len(tables)
		schemas = append(schemas, sch)
	}
	return schemas, nil
}

// walkTables lists the tables of a schema and upgrades each to its detailed
// representation. A table whose detailed fetch fails keeps its listing
// representation rather than failing the whole extraction.
func (c *Client) walkTables(ctx context.Context, schemaFQN string, opts ExtractOptions) ([]schema.Table, error) {
	query := url.Values{
		"databaseSchema": {schemaFQN},
		"include":        {"all,tags,owners"},
		"fields":         {"columns,owners,tags,tableType,description,displayName,tableConstraints,tablePartition,usageSummary"},
	}

	var envelope listEnvelope
	if err := c.get(ctx, "tables", query, &envelope); err != nil {
		return nil, err
	}

	tables := make([]schema.Table, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		detailed := raw
		if id := raw.Get("id").Text(); id != "" {
			fetched, err := c.fetchDetailedTable(ctx, id, opts)
			if err == nil {
				detailed = fetched
			} else if c.logger != nil {
				c.logger.Warnf("could not fetch detailed metadata for table %s: %v", raw.Get("name").Text(), err)
			}
		}

		table, err := tableFromValue(detailed, opts)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (c *Client) fetchDetailedTable(ctx context.Context, tableID string, opts ExtractOptions) (schema.Value, error) {
	query := url.Values{
		"include": {buildIncludeParams(opts)},
		"fields":  {"columns,tableConstraints,tablePartition,owners,tags,followers,usageSummary,profile,sampleData,joins,lineage,testSuite,dataModel,location,extension,domain,dataProducts,votes,lifeCycle,certification,sourceUrl,schemaDefinition,retentionPeriod,sourceHash,queries,customMetrics"},
	}

	var raw schema.Value
	if err := c.get(ctx, "tables/"+url.PathEscape(tableID), query, &raw); err != nil {
		return schema.Value{}, err
	}
	return raw, nil
}

// buildSummary computes the aggregate counts for an extraction. Views are
// tables whose type mentions "view"; owners dedupe by name and tags by FQN
// across the whole tree, including column tags.
func buildSummary(service schema.Service, databases []schema.Database) schema.MetadataSummary {
	summary := schema.MetadataSummary{
		TotalDatabases:          len(databases),
		DataExtractionTimestamp: time.Now().UTC().Format(time.RFC3339),
	}

	ownerNames := make(map[string]struct{})
	tagFQNs := make(map[string]struct{})

	collectOwners := func(owners []schema.Owner) {
		for _, owner := range owners {
			if owner.Name != "" {
				ownerNames[owner.Name] = struct{}{}
			}
		}
	}
	collectTags := func(tags []schema.Tag) {
		for _, tag := range tags {
			if tag.TagFQN != "" {
				tagFQNs[tag.TagFQN] = struct{}{}
			}
		}
	}

	collectOwners(service.Owners)
	collectTags(service.Tags)

	for _, db := range databases {
		collectOwners(db.Owners)
		collectTags(db.Tags)
		summary.TotalSchemas += len(db.Schemas)

		for _, sch := range db.Schemas {
			collectOwners(sch.Owners)
			collectTags(sch.Tags)
			summary.TotalTables += len(sch.Tables)

			for _, table := range sch.Tables {
				collectOwners(table.Owners)
				collectTags(table.Tags)
				summary.TotalColumns += len(table.Columns)

				if table.TableType != "" && strings.Contains(strings.ToLower(table.TableType), "view") {
					summary.TotalViews++
				}
				for _, col := range table.Columns {
					collectTags(col.Tags)
				}
			}
		}
	}

	summary.TotalOwners = len(ownerNames)
	summary.TotalTags = len(tagFQNs)
	return summary
}

