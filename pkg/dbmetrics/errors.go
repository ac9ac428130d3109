package dbmetrics

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the service reacts to
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeExclusionViolation   = "23P01"
)

// IsSerializationFailure returns true when a SERIALIZABLE transaction lost a
// conflict with a concurrent one and may be re-run from the start.
func IsSerializationFailure(err error) bool {
	code := pqCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// IsExclusionViolation returns true when a write was rejected by an EXCLUDE constraint.
func IsExclusionViolation(err error) bool {
	return pqCode(err) == codeExclusionViolation
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}
