/*
Package strategy implements the response strategies of the engine.

Each strategy is a function of the turn's text and the session. It answers with a
prompt, with nothing (its precondition did not hold), or with an error. Some
strategies also mutate the session: banishment adds a forbidden word, the quote
suggestion records what it showed, the imitation strategy drives the challenge
state machine, and the backtracking strategies reset boredom.

Strategies are grouped into four themes (elaboration, imitation, variation,
backtracking). A Set binds each Mode to the pool of strategies eligible for it.
*/
package strategy
