/*
Package session implements session management and persistence orchestration.

The Manager serializes every read-modify-write of a wizard session: a local,
reference-counted mutex per session ID, optionally backed by a distributed lock
so that replicas sharing a store do not interleave updates.
*/
package session
