package domain

// Behavioral constants of the engine. They are inherited from the original
// exercise design and are not derived from anything; change them together with
// the tests that pin them.
const (
	// ImitationAttempts is the number of turns an imitation challenge stays open
	// before it resolves unconditionally.
	ImitationAttempts = 3

	// ImitationSuccessChance is the probability that an attempt resolves the
	// challenge early.
	ImitationSuccessChance = 0.3

	// RepetitionBoredom is the boredom level at which repetitive syntax is called out.
	RepetitionBoredom = 3

	// RecallBoredom is the boredom level at which the writer is sent back to an
	// earlier noun.
	RecallBoredom = 5
)

// Fixed responses.
const (
	// EmptyInputPrompt answers a turn with no text. It never advances state.
	EmptyInputPrompt = "Please enter some text."

	// FallbackResponse answers a turn no strategy could respond to.
	FallbackResponse = "Continue..."
)
