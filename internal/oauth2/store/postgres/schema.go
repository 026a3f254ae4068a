package postgres

import _ "embed"

// Schema is the DDL for the oauth2 tables. Integration tests apply it to a
// fresh database; deployments manage it through their migration tooling.
//
//go:embed schema.sql
var Schema string
