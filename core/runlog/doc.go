// Package runlog persists one Record per scheduling run and answers queries
// over past runs. Three backends share the Store interface: a plain JSONL
// file, a JSONL file rotated by lumberjack, and a SQLite database.
package runlog
