package ranking

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownPlayer is returned when a claim names an ID that is not on the board.
var ErrUnknownPlayer = errors.New("unknown player")

// Claim records one points award.
type Claim struct {
	PlayerID string    `csv:"player_id"`
	Name     string    `csv:"name"`
	Points   int       `csv:"points"`
	At       time.Time `csv:"at"`
}

// Board is an in-memory leaderboard used by the demo host in place of a
// remote ranking service.
type Board struct {
	entries  []Entry
	history  []Claim
	rng      *rand.Rand
	claimMin int
	claimMax int

	// now is replaceable for tests
	now func() time.Time
}

// NewBoard creates an empty board awarding claimMin..claimMax points per claim.
func NewBoard(rng *rand.Rand, claimMin, claimMax int) *Board {
	if claimMin < 1 {
		claimMin = 1
	}
	if claimMax < claimMin {
		claimMax = claimMin
	}
	return &Board{
		rng:      rng,
		claimMin: claimMin,
		claimMax: claimMax,
		now:      time.Now,
	}
}

// Add registers a new player with zero points.
func (b *Board) Add(name string) Entry {
	e := Entry{ID: uuid.NewString(), Name: name}
	b.entries = append(b.entries, e)
	return e
}

// Load appends entries, assigning IDs to any that lack one.
func (b *Board) Load(entries []Entry) {
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		b.entries = append(b.entries, e)
	}
}

// Claim awards a random number of points to the player and records it.
func (b *Board) Claim(id string) (Claim, error) {
	i := slices.IndexFunc(b.entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return Claim{}, fmt.Errorf("claiming for %q: %w", id, ErrUnknownPlayer)
	}

	points := b.claimMin + b.rng.Intn(b.claimMax-b.claimMin+1)
	b.entries[i].Score += float64(points)

	c := Claim{
		PlayerID: id,
		Name:     b.entries[i].Name,
		Points:   points,
		At:       b.now(),
	}
	b.history = append(b.history, c)
	return c, nil
}

// Entries returns players in registration order.
func (b *Board) Entries() []Entry {
	return slices.Clone(b.entries)
}

// Ranked returns players by non-increasing score, ties in registration order.
func (b *Board) Ranked() []Entry {
	return Rank(b.entries)
}

// History returns claims newest first.
func (b *Board) History() []Claim {
	h := slices.Clone(b.history)
	slices.Reverse(h)
	return h
}

// Len returns the number of players.
func (b *Board) Len() int {
	return len(b.entries)
}

// SetClock replaces the clock used to stamp claims.
func (b *Board) SetClock(now func() time.Time) {
	if now != nil {
		b.now = now
	}
}
