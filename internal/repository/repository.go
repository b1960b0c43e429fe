package repository

import "errors"

// ErrVersionConflict is reported by conditional updates when the stored
// version no longer matches the version the caller loaded. The caller must
// re-read before deciding to retry.
var ErrVersionConflict = errors.New("version conflict")
