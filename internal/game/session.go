// Package game holds the study logic: card sessions, answer evaluation,
// progress, and settings.
package game

import "github.com/hax2/altlang/internal/content"

// Session walks an ordered deck of cards with a cursor. The cursor
// saturates one past the final card, which marks the session complete.
type Session struct {
	cards []content.Card
	index int
}

func NewSession() *Session {
	return &Session{}
}

// Load replaces the deck and rewinds the cursor. An empty deck is
// immediately complete.
func (s *Session) Load(cards []content.Card) {
	s.cards = cards
	s.index = 0
}

// Current returns the card under the cursor, or nil when the session
// is complete.
func (s *Session) Current() *content.Card {
	if s.index >= len(s.cards) {
		return nil
	}
	return &s.cards[s.index]
}

// Advance moves the cursor forward, stopping at one past the end.
func (s *Session) Advance() {
	if s.index < len(s.cards) {
		s.index++
	}
}

// Retreat moves the cursor back, stopping at the first card.
func (s *Session) Retreat() {
	if s.index > 0 {
		s.index--
	}
}

func (s *Session) IsComplete() bool {
	return s.index >= len(s.cards)
}

func (s *Session) Index() int {
	return s.index
}

func (s *Session) Len() int {
	return len(s.cards)
}

func (s *Session) Cards() []content.Card {
	return s.cards
}
