// Package modeldb persists the bookkeeping for finished solver runs:
// which cooling models exist, the stellar parameters they were computed
// with, and which line runs were ray-traced against them. The database
// is SQLite with WAL journaling; concurrent pipelines on one machine
// are serialized through an advisory file lock taken around writes.
package modeldb
