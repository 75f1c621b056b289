/*
Package domain contains the core domain models of the Gymnasion engine.

It defines the per-conversation Session record that every strategy reads and
mutates, the Modes that select which strategies are eligible on a turn, and the
lifecycle hooks the engine reports through. This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - Session: mutable per-conversation state (transcript, banished words, used quotes, boredom, imitation challenge).
  - Mode: a named subset (or the union) of strategy groups.
  - Status: the read-only snapshot presented to hosts after a turn.
  - LifecycleHooks: callbacks for observing turns and strategy failures.
*/
package domain
