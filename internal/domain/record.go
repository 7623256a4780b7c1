package domain

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Record is implemented by every persisted entity. The pair
// (PartitionKey, RecordID) identifies a stored item.
type Record interface {
	RecordID() string
	PartitionKey() string
}

// GenerateID derives a deterministic id from an explicit list of field
// values. Items with identical fields get identical ids.
func GenerateID(fields ...string) string {
	h := xxhash.New()
	for i, f := range fields {
		if i > 0 {
			_, _ = h.WriteString("\x1f")
		}
		_, _ = h.WriteString(strings.TrimSpace(f))
	}
	return fmt.Sprintf("%016X", h.Sum64())
}
