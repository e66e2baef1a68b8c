package game

import "github.com/hangdle/go-server/internal/words"

// Notifier is implemented by whatever renders a round (terminal, web client).
// The Controller calls it after every state change; implementations must not
// call back into the Controller.
type Notifier interface {
	// RoundStarted is called once a new round is active.
	RoundStarted(r *Round)
	// LetterGuessed reports a player guess; the letter's input control can
	// be disabled and colored by hit.
	LetterGuessed(letter rune, hit bool)
	// MistakeMade reports the new mistake count and indicator image.
	MistakeMade(count int, image string)
	// HintUsed reports a revealed letter and the hints still available.
	HintUsed(letter rune, remaining int)
	// RoundEnded reports the final status and the full word.
	RoundEnded(status Status, word string)
}

// NopNotifier ignores every notification.
type NopNotifier struct{}

func (NopNotifier) RoundStarted(*Round) {}
func (NopNotifier) LetterGuessed(rune, bool) {}
func (NopNotifier) MistakeMade(int, string) {}
func (NopNotifier) HintUsed(rune, int) {}
func (NopNotifier) RoundEnded(Status, string) {}

// Event types recorded by EventLog.
const (
	EventRoundStarted = "round_started"
	EventHit          = "hit"
	EventMiss         = "miss"
	EventMistake      = "mistake"
	EventHint         = "hint"
	EventRoundEnded   = "round_ended"
)

// Event is one recorded notification.
type Event struct {
	Type       string           `json:"type"`
	Letter     string           `json:"letter,omitempty"`
	Count      int              `json:"count,omitempty"`
	Image      string           `json:"image,omitempty"`
	Remaining  int              `json:"remaining,omitempty"`
	Status     Status           `json:"status,omitempty"`
	Word       string           `json:"word,omitempty"`
	Difficulty words.Difficulty `json:"difficulty,omitempty"`
	Length     int              `json:"length,omitempty"`
}

// EventLog records notifications so they can be replayed to a remote client.
type EventLog struct {
	Events []Event
}

func (l *EventLog) RoundStarted(r *Round) {
	l.Events = append(l.Events, Event{Type: EventRoundStarted, Difficulty: r.Difficulty, Length: r.WordLength()})
}

func (l *EventLog) LetterGuessed(letter rune, hit bool) {
	t := EventMiss
	if hit {
		t = EventHit
	}
	l.Events = append(l.Events, Event{Type: t, Letter: string(letter)})
}

func (l *EventLog) MistakeMade(count int, image string) {
	l.Events = append(l.Events, Event{Type: EventMistake, Count: count, Image: image})
}

func (l *EventLog) HintUsed(letter rune, remaining int) {
	l.Events = append(l.Events, Event{Type: EventHint, Letter: string(letter), Remaining: remaining})
}

func (l *EventLog) RoundEnded(status Status, word string) {
	l.Events = append(l.Events, Event{Type: EventRoundEnded, Status: status, Word: word})
}
