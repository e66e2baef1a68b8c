// internal/daily/daily.go
//
// Deterministic "word of the day" selection.
// Every player asking for the daily round of a given difficulty on the same
// UTC date gets the same word, without any shared state between processes.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using
// HMAC(salt, scope|YYYY-MM-DD) % listLen. The scope keeps the three
// difficulty lists from moving in lockstep.
func WordIndex(date time.Time, salt, scope string, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope + "|" + DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(listLen))
}
