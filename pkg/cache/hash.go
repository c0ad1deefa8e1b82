package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/matzehuels/trisolve/pkg/triangle"
)

// keyVersion is part of every key. Bump it when a renderer's output changes
// for the same inputs so artifacts cached by older builds stop matching.
const keyVersion = "v1"

// hashKey returns prefix:keyVersion:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + keyVersion + ":" + Hash(data)
}

// measureKey spells out the mode's given measures in their fixed order,
// e.g. "SAS|a=150|b=180|C=60". Shortest round-trip formatting makes 60 and
// 60.000 the same key.
func measureKey(mode triangle.Mode, in triangle.Measures) string {
	var b strings.Builder
	b.WriteString(mode.String())
	for _, k := range mode.Given() {
		b.WriteByte('|')
		b.WriteString(string(k))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(in.Get(k), 'g', -1, 64))
	}
	return b.String()
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first 16 hex digits of [Hash], enough to tell
// themes apart inside an artifact key.
func ShortHash(data []byte) string {
	return Hash(data)[:16]
}
