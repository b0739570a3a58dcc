// Package catalog models the community pinball catalog: games, their
// thirteen typed resource collections, the JSON codec for the published
// document and the per-game edit files, and the derived lookup indexes.
//
// The serialized form is owned by the upstream community project; field
// names and omission rules here must match it exactly. Everything derived
// (resource back-references, URL indexes, duplicate findings) is recomputed
// on load and never written back.
package catalog
