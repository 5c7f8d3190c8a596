package postgres

import (
	"database/sql"

	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// errNotFound is returned by every postgres repository for a missing or
// cross-tenant id, matching the sentinel usecase services already check for.
var errNotFound = usecase.ErrNotFound
