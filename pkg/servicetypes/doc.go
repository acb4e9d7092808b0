// Package servicetypes is the registry of database-service kinds the
// metadata catalog accepts, with per-engine defaults (driver scheme, port)
// and alias resolution for user input.
package servicetypes
