// Package session provides persistence backends for delegation run
// transcripts.
//
//   - [MemoryStore] keeps sessions in a mutex-protected map, deep-copied on
//     save and load.
//   - [FileStore] persists each session as a {id}.json file in a directory.
//
// Both implement delegate.SessionStore and are wired into an engine via
// delegate.WithSessionStore.
package session
