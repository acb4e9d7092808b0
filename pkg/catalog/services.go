package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/catalogwire/catalogwire/pkg/schema"
)

// listEnvelope is the catalog's collection response shape.
type listEnvelope struct {
	Data []schema.Value `json:"data"`
}

// GetDatabaseService fetches a database service by name with its full
// descriptive metadata.
func (c *Client) GetDatabaseService(ctx context.Context, serviceName string) (schema.Service, error) {
	query := url.Values{
		"include": {"all,tags,owners,followers,domain,dataProducts"},
		"fields":  {"owners,tags,connection,version,ingestionSchedule,sourceUrl,domains,dataProducts,lifeCycle,certification,votes,followers,sourceHash"},
	}

	var raw schema.Value
	if err := c.get(ctx, "services/databaseServices/name/"+url.PathEscape(serviceName), query, &raw); err != nil {
		return schema.Service{}, err
	}
	return serviceFromValue(raw)
}

// lookupService fetches a service by name without extra fields; a catalog
// 404 means it does not exist.
func (c *Client) lookupService(ctx context.Context, serviceName string) (schema.Value, bool, error) {
	var raw schema.Value
	err := c.get(ctx, "services/databaseServices/name/"+url.PathEscape(serviceName), nil, &raw)
	if err != nil {
		if IsNotFound(err) {
			return schema.Value{}, false, nil
		}
		return schema.Value{}, false, err
	}
	return raw, true, nil
}

// CreateDatabaseService registers a database service. The payload is
// validated first; when a service with that name already exists (either
// found by the pre-check or reported as a conflict by the catalog) the
// returned message says so instead of failing.
func (c *Client) CreateDatabaseService(ctx context.Context, payload schema.DatabaseServicePayload) (schema.MessageResponse, error) {
	if err := payload.Validate(); err != nil {
		return schema.MessageResponse{}, err
	}

	existing, exists, err := c.lookupService(ctx, payload.Name)
	if err != nil {
		return schema.MessageResponse{}, err
	}
	if exists {
		if c.logger != nil {
			c.logger.Warnf("database service %q already exists", payload.Name)
		}
		return schema.MessageResponse{
			Message: fmt.Sprintf("Database service '%s' already exists in the catalog with ID: %s",
				payload.Name, existing.Get("id").Text()),
		}, nil
	}

	request := map[string]any{
		"name":        payload.Name,
		"serviceType": payload.ServiceType,
		"connection": map[string]any{
			"config": payload.Connection,
		},
	}
	if payload.Description != "" {
		request["description"] = payload.Description
	}
	if payload.DisplayName != "" {
		request["displayName"] = payload.DisplayName
	}
	if len(payload.Tags) > 0 {
		tags := make([]map[string]string, 0, len(payload.Tags))
		for _, tag := range payload.Tags {
			tags = append(tags, map[string]string{"tagFQN": tag})
		}
		request["tags"] = tags
	}
	if len(payload.Owners) > 0 {
		owners := make([]map[string]string, 0, len(payload.Owners))
		for _, owner := range payload.Owners {
			owners = append(owners, map[string]string{
				"name": owner.Name,
				"type": string(owner.Type),
			})
		}
		request["owners"] = owners
	}

	var created schema.Value
	if err := c.post(ctx, "services/databaseServices", request, &created); err != nil {
		if IsConflict(err) {
			return schema.MessageResponse{
				Message: fmt.Sprintf("Database service '%s' already exists in the catalog", payload.Name),
			}, nil
		}
		return schema.MessageResponse{}, fmt.Errorf("service creation failed: %w", err)
	}

	if c.logger != nil {
		c.logger.Infof("database service %q created with ID %s", created.Get("name").Text(), created.Get("id").Text())
	}
	return schema.MessageResponse{
		Message: fmt.Sprintf("Database service '%s' created successfully in the catalog with ID: %s",
			created.Get("name").Text(), created.Get("id").Text()),
	}, nil
}
