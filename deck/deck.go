package deck

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyDeck is returned when a draw is requested from a deck with no cards.
var ErrEmptyDeck = errors.New("deck is empty")

// Card is one drawable card. Meanings may be nil and render as JSON null.
type Card struct {
	Name            string  `json:"name"`
	UprightMeaning  *string `json:"upright_meaning"`
	ReversedMeaning *string `json:"reversed_meaning"`
}

// Deck is a fixed, ordered set of cards. The zero value is an empty deck.
// A Deck is never mutated after New returns, so it is safe to share
// between goroutines.
type Deck struct {
	cards []Card
}

// New builds a deck holding a copy of cards.
func New(cards ...Card) Deck {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return Deck{cards: cp}
}

// Len returns the number of cards.
func (d Deck) Len() int { return len(d.cards) }

// Cards returns a copy of the cards in deck order.
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Names returns the card names in deck order.
func (d Deck) Names() []string {
	out := make([]string, 0, len(d.cards))
	for _, c := range d.cards {
		out = append(out, c.Name)
	}
	return out
}

// Draw picks one card uniformly at random, with replacement.
func (d Deck) Draw() (Card, error) {
	return d.DrawWith(rand.IntN)
}

// DrawWith picks a card using intn, which must return a value in [0, n).
func (d Deck) DrawWith(intn func(n int) int) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	return d.cards[intn(len(d.cards))], nil
}
