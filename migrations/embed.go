// Package migrations compiles the schema SQL into the staykit binary,
// so a deployment needs no migration files on disk.
package migrations

import (
	"embed"

	"github.com/staykit/staykit-core/internal/infrastructure/database"
)

//go:embed *.sql
var files embed.FS

func init() {
	database.MigrationsFS = files
	database.MigrationsDir = "." // embedded files sit at the FS root
}
