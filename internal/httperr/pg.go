package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsForeignKeyViolation détecte une violation de clé étrangère levée par
// Postgres (code 23503). Les suppressions la traduisent en 409.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	// Fallback SQLite (tests) : le driver n'expose qu'un message texte.
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
