package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/catalogwire/catalogwire/cmd/cli/internal/common"
	"github.com/catalogwire/catalogwire/pkg/schema"
	"github.com/catalogwire/catalogwire/pkg/servicetypes"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// CreateOptions collects everything needed to register a database service.
// Either File points at a full payload JSON document, or the remaining
// fields describe a PostgreSQL service to build a payload from.
type CreateOptions struct {
	File        string
	Name        string
	ServiceType string
	Description string
	DisplayName string
	Tags        []string
	Owners      []string

	Username string
	Password string
	HostPort string
	Database string
	SSLMode  string
}

// CreateService registers a database service in the catalog.
func CreateService(opts CreateOptions) error {
	payload, err := buildPayload(opts)
	if err != nil {
		return err
	}

	client := common.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := client.CreateDatabaseService(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Printf("%s %s\n", green("✓"), resp.Message)
	return nil
}

func buildPayload(opts CreateOptions) (schema.DatabaseServicePayload, error) {
	if opts.File != "" {
		return payloadFromFile(opts.File)
	}

	if opts.Name == "" {
		return schema.DatabaseServicePayload{}, fmt.Errorf("service name is required (--name)")
	}
	serviceType := servicetypes.PostgreSQL
	if opts.ServiceType != "" {
		resolved, ok := servicetypes.Parse(opts.ServiceType)
		if !ok {
			return schema.DatabaseServicePayload{}, fmt.Errorf("unknown service type %q (one of: %s)", opts.ServiceType, servicetypes.NameList())
		}
		serviceType = resolved
	}
	if serviceType != servicetypes.PostgreSQL {
		return schema.DatabaseServicePayload{}, fmt.Errorf("connection flags only support PostgreSQL services; use --file to register a %s service", serviceType)
	}

	password := opts.Password
	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return schema.DatabaseServicePayload{}, err
		}
	}

	hostPort := opts.HostPort
	if hostPort != "" && !strings.Contains(hostPort, ":") {
		if entry, ok := servicetypes.Get(serviceType); ok && entry.DefaultPort != 0 {
			hostPort = fmt.Sprintf("%s:%d", hostPort, entry.DefaultPort)
		}
	}

	conn, err := schema.NewPostgreSQLConnection(opts.Username, hostPort, opts.Database, map[string]schema.Value{
		"password": schema.String(password),
	})
	if err != nil {
		return schema.DatabaseServicePayload{}, err
	}
	if opts.SSLMode != "" {
		mode, err := schema.ParseSSLMode(opts.SSLMode)
		if err != nil {
			return schema.DatabaseServicePayload{}, err
		}
		conn.SSLMode = mode
	}

	owners, err := parseOwners(opts.Owners)
	if err != nil {
		return schema.DatabaseServicePayload{}, err
	}

	payload := schema.DatabaseServicePayload{
		Name:        opts.Name,
		ServiceType: string(serviceType),
		Connection:  conn.Config(),
		Description: opts.Description,
		DisplayName: opts.DisplayName,
		Tags:        opts.Tags,
		Owners:      owners,
	}
	if err := payload.Validate(); err != nil {
		return schema.DatabaseServicePayload{}, err
	}
	return payload, nil
}

func payloadFromFile(path string) (schema.DatabaseServicePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.DatabaseServicePayload{}, fmt.Errorf("failed to read payload file: %w", err)
	}
	var payload schema.DatabaseServicePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return schema.DatabaseServicePayload{}, fmt.Errorf("failed to parse payload file: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return schema.DatabaseServicePayload{}, err
	}
	return payload, nil
}

// parseOwners turns "name" or "name:type" flag values into owner
// references. The type defaults to user.
func parseOwners(specs []string) ([]schema.Owner, error) {
	var owners []schema.Owner
	for _, spec := range specs {
		name, typeName, found := strings.Cut(spec, ":")
		if !found {
			typeName = string(schema.OwnerTypeUser)
		}
		ownerType, err := schema.ParseOwnerType(typeName)
		if err != nil {
			return nil, fmt.Errorf("invalid owner %q: %w", spec, err)
		}
		owner, err := schema.NewOwner(name, "", ownerType)
		if err != nil {
			return nil, fmt.Errorf("invalid owner %q: %w", spec, err)
		}
		owners = append(owners, owner)
	}
	return owners, nil
}

func promptPassword() (string, error) {
	fmt.Print("Database password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}
