package postgres

import (
	"database/sql"

	ierr "github.com/detailpos/detailpos/internal/errors"
)

// requireRowAffected converts a zero-row write into a not-found error
func requireRowAffected(result sql.Result, entity string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("%s %s was not found", entity, id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
