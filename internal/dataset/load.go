// Package dataset loads the nested bilingual-keyed dashboard dataset from
// disk and keeps an in-memory copy fresh while the server runs.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// Load reads and decodes the dataset file. Unknown keys are ignored and
// malformed numeric values decode to zero, so a partially well-formed file
// still loads.
func Load(path string) (models.RawDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	var ds models.RawDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset file %s: %w", path, err)
	}
	return ds, nil
}
