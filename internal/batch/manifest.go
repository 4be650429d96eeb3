package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Seed      int64  `json:"seed"`
	Image     string `json:"image,omitempty"`
	OBJ       string `json:"obj,omitempty"`
	Branches  int    `json:"branches"`
	Points    int    `json:"points"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
	Error     string `json:"error,omitempty"`
}

// WriteManifest writes a JSON summary of results to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:      r.Name,
			Seed:      r.Seed,
			Image:     r.Image,
			OBJ:       r.OBJ,
			Branches:  r.Summary.Branches,
			Points:    r.Summary.TotalPoints,
			Vertices:  r.Vertices,
			Triangles: r.Triangles,
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
