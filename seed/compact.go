package seed

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadCompact decodes a movies-compact JSON array.
func ReadCompact(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode movies json: %w", err)
	}
	return records, nil
}
