// Package session implements revocable, tamper-evident cookie sessions.
//
// A session is identified by a high-entropy random value (the sid) that is
// transmitted only inside an HttpOnly cookie. The server persists a
// secret-keyed SHA-256 hash of the sid, never the sid itself, so a leaked
// session store cannot be replayed as cookies without the session secret.
//
// A session row is active while it is neither revoked nor expired. Expiry
// is fixed-window: resolving a session never extends its lifetime. Logout
// and rotation mark rows revoked; rows are never deleted by this package.
//
// Stores are pluggable via the Store interface, with in-memory, PostgreSQL
// (pgx) and Redis implementations provided.
package session
