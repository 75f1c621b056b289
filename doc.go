/*
Package gymnasion is a literary prompt engine: given a line of text written by a
user and a mode, it answers with a short prompt that nudges the writer on.

Each session remembers everything the user has written, the words the user has
been told to stop using, an open imitation challenge and a boredom counter. A
turn appends the line, runs the priority checks (banished words first, then an
open challenge) and otherwise picks one strategy at random from the pool of the
selected mode. When no strategy has anything to say, a fixed fallback answers.

# Usage

	engine := gymnasion.New(gymnasion.WithSeed(42))

	res, err := engine.ProcessTurn(ctx, "session-123", "the wolf howled at the moon", "mixed")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Response)
	fmt.Println(res.Status.WordCount)

Sessions live in memory by default. Use WithStore with one of the adapters under
pkg/adapters (memory, redis) or internal/adapters/file to keep them elsewhere,
and WithLocker when several processes share a store.

# Modes

  - elaboration: questions and expansions about what was written.
  - imitation: quotes and pastiche challenges.
  - variation: banished words and judgments on repetition.
  - backtracking: recalls and comparisons with earlier lines.
  - mixed: every strategy (the default, and what unknown modes fall back to).

Strategies never fail a turn: an error or panic inside one is logged, reported
through LifecycleHooks and skipped.
*/
package gymnasion
