package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, mistakes, length int) Entry {
	return Entry{
		Name:       name,
		Mistakes:   mistakes,
		WordLength: length,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Time:       30,
		Status:     StatusWon,
	}
}

func TestNewBoard_AllEmpty(t *testing.T) {
	b := NewBoard(3)
	assert.Equal(t, []string{EmptyRow, EmptyRow, EmptyRow}, b.Rows())

	entries, err := b.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Len(t, NewBoard(0).Rows(), DefaultSize)
}

func TestBoard_SortToggles(t *testing.T) {
	b := NewBoard(3)
	_, err := b.Record(entry("two-five", 2, 5))
	require.NoError(t, err)
	_, err = b.Record(entry("one-seven", 1, 7))
	require.NoError(t, err)

	assert.True(t, b.Ascending(ByResult))
	rows, asc, err := b.Sort(ByResult)
	require.NoError(t, err)
	assert.True(t, asc)
	assert.Equal(t, []string{"one-seven", "two-five", EmptyRow}, names(t, rows))

	rows, asc, err = b.Sort(ByResult)
	require.NoError(t, err)
	assert.False(t, asc)
	assert.Equal(t, []string{"two-five", "one-seven", EmptyRow}, names(t, rows))

	assert.True(t, b.Ascending(ByResult))
	assert.True(t, b.Ascending(ByTime), "criteria toggle independently")
	assert.Equal(t, rows, b.Rows())
}

func TestBoard_RecordFillsFirstEmptySlot(t *testing.T) {
	b := NewBoard(2)
	ok, err := b.Record(entry("a", 1, 5))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", EmptyRow}, names(t, b.Rows()))
}

func TestBoard_RecordReplacesWorstWhenFull(t *testing.T) {
	b := NewBoard(2)
	require.NoError(t, b.Load([]Entry{entry("good", 0, 8), entry("bad", 5, 4)}))

	ok, err := b.Record(entry("worse", 6, 3))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.Record(entry("better", 1, 6))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"good", "better"}, names(t, b.Rows()))
}

func TestBoard_RecordRejectsInvalid(t *testing.T) {
	b := NewBoard(2)
	_, err := b.Record(Entry{Name: "x, y", Status: StatusWon})
	assert.ErrorIs(t, err, ErrMalformedEntry)
	assert.Equal(t, []string{EmptyRow, EmptyRow}, b.Rows())
}

func TestBoard_SortByDateUsesTimeOfDay(t *testing.T) {
	b := NewBoard(3)
	late := entry("late", 1, 5)
	late.Date = time.Date(2024, 3, 10, 13, 0, 0, 0, time.FixedZone("EST", -5*3600))
	early := entry("early", 1, 5)
	early.Date = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := b.Record(late)
	require.NoError(t, err)
	_, err = b.Record(early)
	require.NoError(t, err)
	assert.Contains(t, b.Rows()[0], "2024-03-10 18:00:00", "rendered in UTC")

	rows, asc, err := b.Sort(ByDate)
	require.NoError(t, err)
	assert.True(t, asc)
	assert.Equal(t, []string{"early", "late"}, names(t, rows[:2]))
	assert.Equal(t, EmptyRow, rows[2])

	rows, asc, err = b.Sort(ByDate)
	require.NoError(t, err)
	assert.False(t, asc)
	assert.Equal(t, []string{"late", "early"}, names(t, rows[:2]))
	assert.Equal(t, EmptyRow, rows[2])
}

func TestBoard_SortRejectsUnknownCriterion(t *testing.T) {
	b := NewBoard(2)
	_, err := b.Record(entry("a", 1, 5))
	require.NoError(t, err)
	before := b.Rows()

	_, _, err = b.Sort("name")
	assert.ErrorIs(t, err, ErrUnknownCriterion)
	assert.Equal(t, before, b.Rows())
	assert.False(t, b.Ascending("name"))
	assert.Len(t, b.ascending, len(Criteria), "no key added for the unknown criterion")
}
