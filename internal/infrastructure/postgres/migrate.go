package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate ejecuta en orden los scripts de migrations/. Los scripts son idempotentes
// (CREATE ... IF NOT EXISTS), por lo que puede correrse en cada arranque.
func Migrate(ctx context.Context, q Querier) error {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(files)
	for _, name := range files {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		// Sin argumentos pgx usa el protocolo simple, que admite varias sentencias.
		if _, err := q.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("ejecutar %s: %w", name, err)
		}
		log.Debug().Str("migration", name).Msg("migración aplicada")
	}
	return nil
}
