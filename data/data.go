// Package data defines the four document shapes this pipeline produces:
// per-track records plus per-artist, per-album, and per-genre
// aggregates. The JSON tags match the Elasticsearch mappings in the
// elastic package; the gorm tags let the same structs back the local
// sqlite catalog.
//
// Fields that are conditional ("present only if any contributing value
// existed") are pointers with omitempty, so absence is encoded by
// leaving the key out entirely rather than writing null or zero.
package data

// Doc is implemented by every document written to a sink. Documents
// whose ID is empty are skipped by sinks, silently.
type Doc interface {
	ID() string
}
