package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag builds a strong ETag from a document id and its last update
// time, so conditional GETs can short-circuit unchanged reads.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(id.Hex() + updatedAt.UTC().Format(time.RFC3339Nano)))
	return fmt.Sprintf(`"%s"`, hex.EncodeToString(sum[:8]))
}
