package memory

import "github.com/riskibarqy/hoopscheduler/internal/usecase"

// errNotFound is returned by every in-memory repository for a missing or
// cross-tenant id, matching the sentinel usecase services already check for.
var errNotFound = usecase.ErrNotFound
