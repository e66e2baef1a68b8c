package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstSource always picks index 0.
type firstSource struct{}

func (firstSource) IntN(int) int { return 0 }

func guessAll(r *Round, letters string) {
	for _, c := range letters {
		r.Guess(c)
	}
}

func TestStartRound_Defaults(t *testing.T) {
	r := StartRound("  Apple ")

	assert.Equal(t, "apple", r.Target)
	assert.Empty(t, r.Guessed)
	assert.Zero(t, r.Mistakes)
	assert.Zero(t, r.Hints)
	assert.False(t, r.Ended)
	assert.Equal(t, StatusOngoing, r.CheckStatus())
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "_____", r.Masked())
	assert.Equal(t, "bild-0.svg", r.Image())
}

func TestGuess_HitAndMiss(t *testing.T) {
	r := StartRound("apple")

	hit, ok := r.Guess('P')
	assert.True(t, ok)
	assert.True(t, hit)
	assert.True(t, r.Guessed['p'], "letters are stored lowercase")
	assert.Equal(t, "_pp__", r.Masked())

	hit, ok = r.Guess('z')
	assert.True(t, ok)
	assert.False(t, hit)
	assert.Equal(t, 1, r.Mistakes)
	assert.Equal(t, "bild-1.svg", r.Image())
}

func TestGuess_DuplicateIsNoop(t *testing.T) {
	r := StartRound("apple")
	r.Guess('z')

	for _, c := range []rune{'z', 'Z'} {
		hit, ok := r.Guess(c)
		assert.False(t, ok)
		assert.False(t, hit)
	}
	assert.Equal(t, 1, r.Mistakes)
	assert.Len(t, r.Guessed, 1)
}

func TestGuess_NonLetterIsNoop(t *testing.T) {
	r := StartRound("apple")
	_, ok := r.Guess('7')
	assert.False(t, ok)
	assert.Empty(t, r.Guessed)
	assert.Zero(t, r.Mistakes)
}

func TestGuess_EndedRoundIsFrozen(t *testing.T) {
	r := StartRound("apple")
	r.Guess('a')
	r.End(StatusLost)

	before := r.GuessedLetters()
	_, ok := r.Guess('x')
	assert.False(t, ok)
	_, ok = r.Guess('p')
	assert.False(t, ok)
	assert.Equal(t, before, r.GuessedLetters())
	assert.Zero(t, r.Mistakes)
}

func TestCheckStatus_WonWhenAllLettersGuessed(t *testing.T) {
	cases := []struct {
		word    string
		guesses string
	}{
		{"apple", "aple"},
		{"apple", "xyzaple"},
		{"banana", "qwertban"},
		{"a", "a"},
	}
	for _, tc := range cases {
		r := StartRound(tc.word)
		guessAll(r, tc.guesses)
		assert.Equal(t, StatusWon, r.CheckStatus(), "%s/%s", tc.word, tc.guesses)
	}
}

func TestCheckStatus_LostAfterSixMisses(t *testing.T) {
	r := StartRound("apple")
	guessAll(r, "ap")
	guessAll(r, "bcdfgh")

	assert.Equal(t, MaxMistakes, r.Mistakes)
	assert.Equal(t, StatusLost, r.CheckStatus())
}

func TestGuess_NoFurtherMistakesAfterLoss(t *testing.T) {
	r := StartRound("apple")
	guessAll(r, "bcdfghjk")

	assert.Equal(t, MaxMistakes, r.Mistakes)
	assert.Len(t, r.Guessed, MaxMistakes)
}

func TestCheckStatus_WinBeatsLoss(t *testing.T) {
	// Six mistakes and a complete word at the same time resolve to won.
	r := StartRound("ab")
	r.Guessed['a'] = true
	r.Guessed['b'] = true
	r.Mistakes = MaxMistakes
	assert.Equal(t, StatusWon, r.CheckStatus())
}

func TestGuess_DuplicateLettersRevealTogether(t *testing.T) {
	r := StartRound("banana")
	r.Guess('a')
	assert.Equal(t, "_a_a_a", r.Masked())
}

func TestGiveHint_RevealsHiddenLetter(t *testing.T) {
	r := StartRound("apple")
	r.Guess('a')

	l, ok := r.GiveHint(firstSource{})
	require.True(t, ok)
	assert.Equal(t, 'p', l)
	assert.True(t, r.Guessed['p'])
	assert.Equal(t, 1, r.Hints)
	assert.Zero(t, r.Mistakes, "hints never count as mistakes")
	assert.Equal(t, 2, r.HintsLeft())
}

func TestGiveHint_NeverRepeatsGuessedLetter(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		r := StartRound("mnemonic")
		r.Guess('m')
		r.Guess('n')
		seen := r.GuessedLetters()
		l, ok := r.GiveHint(rng)
		require.True(t, ok)
		assert.NotContains(t, seen, string(l))
	}
}

func TestGiveHint_MaxHints(t *testing.T) {
	r := StartRound("labyrinth")
	for i := 0; i < MaxHints; i++ {
		_, ok := r.GiveHint(firstSource{})
		require.True(t, ok)
	}
	guessed := r.GuessedLetters()

	_, ok := r.GiveHint(firstSource{})
	assert.False(t, ok)
	assert.Equal(t, MaxHints, r.Hints)
	assert.Equal(t, guessed, r.GuessedLetters())
}

func TestGiveHint_NothingHidden(t *testing.T) {
	r := StartRound("aa")
	r.Guess('a')

	_, ok := r.GiveHint(firstSource{})
	assert.False(t, ok)
	assert.Zero(t, r.Hints)
}

func TestGiveHint_EndedRound(t *testing.T) {
	r := StartRound("apple")
	r.End(StatusLost)
	_, ok := r.GiveHint(firstSource{})
	assert.False(t, ok)
	assert.Zero(t, r.Hints)
}

func TestEnd_FreezesElapsed(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = time.Now })

	r := StartRound("apple")
	now = base.Add(45 * time.Second)
	r.End(StatusWon)
	now = base.Add(time.Hour)

	assert.Equal(t, 45*time.Second, r.Elapsed())
	r.End(StatusLost)
	assert.Equal(t, StatusWon, r.Status, "second End is ignored")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	r := StartRound("apple")
	r.Difficulty = "easy"
	r.Player = "Alice"
	r.Guess('p')
	r.Guess('z')
	r.GiveHint(firstSource{})

	got, err := Restore(r.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, r.Target, got.Target)
	assert.Equal(t, r.GuessedLetters(), got.GuessedLetters())
	assert.Equal(t, r.Mistakes, got.Mistakes)
	assert.Equal(t, r.Hints, got.Hints)
	assert.Equal(t, r.Player, got.Player)
}

func TestSnapshot_PublicHidesWordUntilEnded(t *testing.T) {
	r := StartRound("apple")
	assert.Empty(t, r.Snapshot().Public().Word)

	r.End(StatusLost)
	assert.Equal(t, "apple", r.Snapshot().Public().Word)
}

func TestRestore_Rejects(t *testing.T) {
	_, err := Restore(Snapshot{})
	assert.Error(t, err)

	_, err = Restore(Snapshot{ID: "x", Word: "apple", Mistakes: 7})
	assert.Error(t, err)

	_, err = Restore(Snapshot{ID: "x", Word: "apple", Guessed: "a1"})
	assert.Error(t, err)
}
