package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-approval"

// UUID derives a deterministic UUID from key using go-hashid. Keys should be
// prefixed by entity kind so different kinds never collide. Keys are
// normalized (case folded) before hashing.
func UUID(key string) uuid.UUID {
	return derive(key, true)
}

func derive(key string, normalize bool) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(normalize))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// StatusUUID returns the catalog ID for a status name. Names are
// case-sensitive, so the name is hashed as given (surrounding space trimmed).
func StatusUUID(name string) uuid.UUID {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil
	}
	return derive(namespace+":status:"+name, false)
}
