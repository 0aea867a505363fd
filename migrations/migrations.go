// Package migrations embebe los esquemas SQL versionados del servidor.
package migrations

import "embed"

// Postgres contiene las migraciones para el driver postgres, aplicadas en
// orden lexicográfico de nombre de archivo.
//
//go:embed postgres/*.sql
var Postgres embed.FS
