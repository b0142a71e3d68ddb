// Package store persists ingested timetable entities.
//
// Store wraps a sqlx handle over modernc SQLite (default) or PostgreSQL via
// the pgx stdlib driver and applies the embedded migrations on Open. All
// writes happen through Tx inside Store.WithTx; queries are written with "?"
// placeholders and rebound for the active driver. SQLite busy errors are
// retried with a short exponential backoff.
package store
