// Package leaderboard holds finished game results: an immutable Entry per
// completed session, a ranked in-memory Board, and the Store collaborator
// that persists boards under a per-variant key.
package leaderboard

import (
	"sort"
	"strings"
	"time"
)

// PlaceholderEmail marks entries that predate the email field. Entries
// carrying it are excluded from email uniqueness checks.
const PlaceholderEmail = "email.no.disponible@legacy.com"

// Entry is one finished session on the board. Entries are created once at
// game completion and never mutated.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	FinalAmount int       `json:"finalAmount"`
	Profile     string    `json:"profile"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// Board is a ranked collection of entries, sorted descending by final
// amount. A retention of 0 keeps every entry; a positive retention keeps
// only the top N after each insert.
type Board struct {
	entries   []Entry
	retention int
}

// NewBoard creates an empty board with the given retention policy.
func NewBoard(retention int) *Board {
	return &Board{retention: retention}
}

// NewBoardFrom creates a board pre-populated with previously stored entries.
// The entries are re-ranked so a board is sorted even if the stored payload
// was not.
func NewBoardFrom(entries []Entry, retention int) *Board {
	b := &Board{retention: retention}
	b.entries = append(b.entries, entries...)
	b.rank()
	return b
}

// Insert adds an entry and restores the ranking invariant.
func (b *Board) Insert(e Entry) {
	b.entries = append(b.entries, e)
	b.rank()
}

func (b *Board) rank() {
	// Stable sort so equal amounts keep insertion order, which is
	// generation order given sortable IDs.
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].FinalAmount > b.entries[j].FinalAmount
	})
	if b.retention > 0 && len(b.entries) > b.retention {
		b.entries = b.entries[:b.retention]
	}
}

// NameTaken reports whether a display name is already on the board,
// case-insensitively.
func (b *Board) NameTaken(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range b.entries {
		if strings.ToLower(e.Name) == name {
			return true
		}
	}
	return false
}

// EmailTaken reports whether an email is already registered. Placeholder
// emails backfilled during migration never count as taken.
func (b *Board) EmailTaken(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range b.entries {
		if e.Email == "" || e.Email == PlaceholderEmail {
			continue
		}
		if strings.ToLower(e.Email) == email {
			return true
		}
	}
	return false
}

// Entries returns a copy of the ranked entries.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries on the board.
func (b *Board) Len() int {
	return len(b.entries)
}

// Clear removes every entry.
func (b *Board) Clear() {
	b.entries = nil
}
