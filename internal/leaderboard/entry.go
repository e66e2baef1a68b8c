// internal/leaderboard/entry.go
//
// Leaderboard rows and their fixed display format:
//
//	"<name>, Mistakes: <int>, Word Length: <int>, <date>, <int> seconds, <won|lost>"
//
// Rows containing the word "Empty" are placeholders for unfilled slots and
// are never parsed.

package leaderboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EmptyRow is the placeholder text for an unfilled slot.
const EmptyRow = "Empty"

// Result values of an entry.
const (
	StatusWon  = "won"
	StatusLost = "lost"
)

const (
	fieldSep    = ", "
	mistakesTag = "Mistakes: "
	lengthTag   = "Word Length: "
	secondsTag  = " seconds"
	dateLayout  = "2006-01-02 15:04:05" // always rendered in UTC
	entryFields = 6
)

// ErrMalformedEntry is wrapped by every ParseEntry failure.
var ErrMalformedEntry = errors.New("leaderboard: malformed entry")

// dateLayouts are tried in order when parsing the date field.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	time.DateOnly,
	"1/2/2006",
}

// Entry is one finished round as shown on the leaderboard.
type Entry struct {
	Name       string    `json:"name"`
	Mistakes   int       `json:"mistakes"`
	WordLength int       `json:"wordLength"`
	Date       time.Time `json:"date"`
	Time       int       `json:"time"` // seconds
	Status     string    `json:"status"`
}

// IsEmpty reports whether a row is an unfilled-slot placeholder.
func IsEmpty(text string) bool {
	return strings.Contains(text, EmptyRow)
}

// String renders e in the display format accepted by ParseEntry.
func (e Entry) String() string {
	return fmt.Sprintf("%s, Mistakes: %d, Word Length: %d, %s, %d seconds, %s",
		e.Name, e.Mistakes, e.WordLength, e.Date.UTC().Format(dateLayout), e.Time, e.Status)
}

// Validate checks that e can be rendered and parsed back unchanged.
func (e Entry) Validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: empty name", ErrMalformedEntry)
	case strings.Contains(e.Name, fieldSep):
		return fmt.Errorf("%w: name %q contains %q", ErrMalformedEntry, e.Name, fieldSep)
	case IsEmpty(e.Name):
		return fmt.Errorf("%w: name %q collides with the placeholder", ErrMalformedEntry, e.Name)
	case e.Mistakes < 0 || e.WordLength < 0 || e.Time < 0:
		return fmt.Errorf("%w: negative counter", ErrMalformedEntry)
	case e.Status != StatusWon && e.Status != StatusLost:
		return fmt.Errorf("%w: status %q", ErrMalformedEntry, e.Status)
	}
	return nil
}

// ParseEntry parses one display row. Placeholder rows must be filtered out
// with IsEmpty before calling it.
func ParseEntry(text string) (Entry, error) {
	fields := strings.Split(text, fieldSep)
	if len(fields) != entryFields {
		return Entry{}, fmt.Errorf("%w: %d fields in %q, want %d", ErrMalformedEntry, len(fields), text, entryFields)
	}

	var (
		e   Entry
		err error
	)
	e.Name = fields[0]
	if e.Name == "" {
		return Entry{}, fmt.Errorf("%w: empty name in %q", ErrMalformedEntry, text)
	}
	if e.Mistakes, err = taggedInt(fields[1], mistakesTag, ""); err != nil {
		return Entry{}, err
	}
	if e.WordLength, err = taggedInt(fields[2], lengthTag, ""); err != nil {
		return Entry{}, err
	}
	if e.Date, err = parseDate(fields[3]); err != nil {
		return Entry{}, err
	}
	if e.Time, err = taggedInt(fields[4], "", secondsTag); err != nil {
		return Entry{}, err
	}
	switch fields[5] {
	case StatusWon, StatusLost:
		e.Status = fields[5]
	default:
		return Entry{}, fmt.Errorf("%w: status %q", ErrMalformedEntry, fields[5])
	}
	return e, nil
}

// taggedInt parses "<prefix><int><suffix>".
func taggedInt(field, prefix, suffix string) (int, error) {
	s, ok := strings.CutPrefix(field, prefix)
	if ok {
		s, ok = strings.CutSuffix(s, suffix)
	}
	if !ok {
		return 0, fmt.Errorf("%w: field %q, want %q<int>%q", ErrMalformedEntry, field, prefix, suffix)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q: %v", ErrMalformedEntry, field, err)
	}
	return n, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedEntry, s)
}
