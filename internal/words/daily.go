// internal/words/daily.go
//
// Daily word selection on top of the difficulty lists.

package words

import (
	"fmt"
	"time"

	"github.com/hangdle/go-server/internal/daily"
)

// Daily returns the word of the day for d. The same date, salt and
// difficulty always yield the same word.
func (l *Lists) Daily(d Difficulty, date time.Time, salt string) (string, error) {
	list, ok := l.byDifficulty[d]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return list[daily.WordIndex(date, salt, string(d), len(list))], nil
}
