// Package db embeds the SQL schema shipped with the service.
package db

import _ "embed"

// Schema holds the DDL for the checkout tables. It is applied in full on
// startup; statements are written to be idempotent.
//
//go:embed migrations/001_schema.sql
var Schema string
