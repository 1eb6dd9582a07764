// Package drafts is the local draft store of the registration wizard.
//
// Each step's values are JSON-encoded and kept under Prefix + step key.
// Store methods never return errors: a failed write is logged and a failed
// or corrupt read looks like "no draft", so a broken store can never block
// the wizard.
//
// Two implementations exist: SQLiteStore over the drafts repository, used by
// the CLI, and MemoryStore for tests and throwaway sessions.
package drafts
