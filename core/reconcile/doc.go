// Package reconcile compares site listings against the catalog index and
// emits findings for files the catalog lacks or disagrees with. The engine
// is read-only over the catalog; the only state it touches is the issue
// ledger, and only when recording is requested.
package reconcile
