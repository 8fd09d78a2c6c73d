// internal/repository/postgres/errors.go
package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"debo/internal/util"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translate maps driver-level failures onto the ledger's error kinds so
// storage-engine text never reaches callers. Anything unrecognized passes
// through for the service layer to wrap.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return util.E(util.KindNotFound, entity, "", "")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return util.Ef(util.KindDuplicate, entity, "", "A %s with this identifier already exists.", entity)
		case pqForeignKeyViolation:
			return util.Ef(util.KindReferencedElsewhere, entity, "", "This %s is still referenced by existing transactions.", entity)
		}
	}
	return err
}
