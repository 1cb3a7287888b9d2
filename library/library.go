// Package library loads an iTunes property-list export ("iTunes Music
// Library.xml") into memory.
//
// The loader does no validation: the document is decoded as-is into a
// tree of loose values, and the rest of the pipeline narrows each field
// to the type it expects.
package library

import (
	"fmt"
	"os"

	"howett.net/plist"
)

// Library is the top level of an iTunes export. Tracks maps the track
// identifier (as written in the plist dictionary key) to the raw track
// record. Playlists are carried along but unused by the aggregation
// pipeline.
type Library struct {
	Tracks    map[string]Raw `plist:"Tracks"`
	Playlists []Raw          `plist:"Playlists"`
}

// Load reads and decodes the property list at the given path. A missing
// or unreadable file is an error; the caller is expected to abort before
// touching any external state.
func Load(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening library at '%s': %w", path, err)
	}
	defer f.Close()

	var lib Library
	dec := plist.NewDecoder(f)
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("error decoding library at '%s': %w", path, err)
	}

	return &lib, nil
}
