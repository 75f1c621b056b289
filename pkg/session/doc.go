/*
Package session implements session management and persistence orchestration.

A Manager guarantees that turns of one session never interleave: Update holds the
session's lock across the whole load, mutate and save cycle. Locks are
process-local by default; WithLocker adds a distributed lock so the guarantee holds
across replicas sharing one store.
*/
package session
