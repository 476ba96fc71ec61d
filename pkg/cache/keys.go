package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default expirations per entry kind. Layout results are cheap to recompute
// but scenes rarely change, so both get generous lifetimes.
const (
	// TTLLayout is the default expiration for arranged layout results.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the default expiration for rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// LayoutKeyOpts carries every input that affects computed coordinates.
// Two arrange calls with equal scene hashes and equal opts are guaranteed
// to produce identical layouts, so they may share a cache entry.
type LayoutKeyOpts struct {
	Strategy           string  `json:"strategy"`
	CanvasWidth        float64 `json:"canvas_width"`
	CanvasHeight       float64 `json:"canvas_height"`
	Padding            float64 `json:"padding"`
	MarginTop          float64 `json:"margin_top"`
	MarginBottom       float64 `json:"margin_bottom"`
	MarginLeft         float64 `json:"margin_left"`
	MarginRight        float64 `json:"margin_right"`
	RespectConnections bool    `json:"respect_connections"`
}

// LayoutKey generates a cache key for an arranged scene.
func LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey generates a cache key for a rendered artifact (svg, png, ...).
func ArtifactKey(layoutHash, format string) string {
	return hashKey("artifact", layoutHash, format)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
