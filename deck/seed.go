package deck

// Standard returns the five-card deck served by the API.
func Standard() Deck {
	return New(
		card("The Fool",
			"New beginnings, optimism, trust in life",
			"Recklessness, taken advantage of, inconsideration"),
		card("The Magician",
			"Willpower, desire, creation, manifestation",
			"Trickery, illusions, out of touch"),
		card("The High Priestess",
			"Intuition, unconscious, inner voice",
			"Lack of center, lost inner voice, repressed feelings"),
		card("The Empress",
			"Motherhood, abundance, nature",
			"Dependence, smothering, emptiness"),
		card("The Sun",
			"Joy, success, celebration, positivity",
			"Negativity, depression, sadness"),
	)
}

func card(name, upright, reversed string) Card {
	return Card{Name: name, UprightMeaning: &upright, ReversedMeaning: &reversed}
}
