package types

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_REQUEST  = "req"
	UUID_PREFIX_PROPOSAL = "prop"
)

// GenerateUUID generates a lowercase ULID, sortable by creation time
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// GenerateUUIDWithPrefix generates a ULID prefixed with the given entity tag
// ex prop_01hny3v0kqxxxxxxxxxxxxxx
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
