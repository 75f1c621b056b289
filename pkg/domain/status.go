package domain

import "slices"

// Status is the read-only view of a session presented to hosts.
type Status struct {
	BanishedWords   []string `json:"banished_words"`
	ImitationTarget string   `json:"imitation_target"`
	WordCount       int      `json:"word_count"`
	Boredom         int      `json:"boredom"`
}

// TurnResult is what a host receives for one turn.
type TurnResult struct {
	Response string `json:"response"`
	Mode     Mode   `json:"mode"`
	Status   Status `json:"status"`
}

// Outcome describes how the dispatcher produced a response.
type Outcome struct {
	Response string

	// Strategy is the name of the strategy that answered. Empty for the empty-input
	// prompt and the fallback.
	Strategy string

	// Priority is true when the answer came from the priority pass.
	Priority bool

	// Fallback is true when no strategy answered.
	Fallback bool

	// Skipped is true when the input was empty and state was left untouched.
	Skipped bool
}

// StatusDiff describes what changed between two status snapshots.
type StatusDiff struct {
	NewlyBanished   []string `json:"newly_banished,omitempty"`
	ImitationTarget *string  `json:"imitation_target,omitempty"`
	WordsAdded      int      `json:"words_added"`
	BoredomReset    bool     `json:"boredom_reset,omitempty"`
}

// Diff calculates the difference between two snapshots.
// If before is nil, the diff describes the entire after snapshot.
func Diff(before *Status, after Status) StatusDiff {
	if before == nil {
		before = &Status{}
	}
	var diff StatusDiff
	for _, w := range after.BanishedWords {
		if !slices.Contains(before.BanishedWords, w) {
			diff.NewlyBanished = append(diff.NewlyBanished, w)
		}
	}
	if before.ImitationTarget != after.ImitationTarget {
		target := after.ImitationTarget
		diff.ImitationTarget = &target
	}
	diff.WordsAdded = after.WordCount - before.WordCount
	diff.BoredomReset = before.Boredom > 0 && after.Boredom == 0
	return diff
}

// Empty reports whether the diff carries no change.
func (d StatusDiff) Empty() bool {
	return len(d.NewlyBanished) == 0 && d.ImitationTarget == nil && d.WordsAdded == 0 && !d.BoredomReset
}
