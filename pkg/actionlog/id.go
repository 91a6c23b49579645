package actionlog

import (
	"github.com/google/uuid"

	"github.com/JailtonJunior94/actionlog/pkg/vos"
)

// NewActionID generates an opaque action id. It prefers a ULID (§3, §6:
// ids should sort with creation order, which keeps Elasticsearch's
// time-partitioned indices and diagram reconstruction queries cheap) and
// falls back to a random UUIDv4 string (36 characters, with hyphens) only
// if the ULID generator's entropy source returns an error.
func NewActionID() string {
	if id, err := vos.NewULID(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
