// Package drafts stores raw draft rows (key, JSON value, update time) in the
// local SQLite database. Keys are stored as given; namespacing is the
// caller's concern.
package drafts
