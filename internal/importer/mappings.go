package importer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// The canonical-field synonym table is data, not code: adding a new accepted
// column name for foreign files means editing the JSON, nothing else.
//
//go:embed field_mappings.json
var fieldMappingsJSON []byte

// fieldMappings maps record kind -> canonical field -> ordered accepted
// synonyms (first match wins).
var fieldMappings map[models.Kind]map[string][]string

func init() {
	if err := json.Unmarshal(fieldMappingsJSON, &fieldMappings); err != nil {
		panic(fmt.Sprintf("importer: bad field_mappings.json: %v", err))
	}
}

// row is one raw imported record with lower-cased, trimmed keys.
type row map[string]any

// newRow normalizes a raw record's keys.
func newRow(raw map[string]any) row {
	r := make(row, len(raw))
	for k, v := range raw {
		r[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return r
}

// resolve returns the first non-empty value among the accepted synonyms for
// the canonical field.
func (r row) resolve(kind models.Kind, field string) (any, bool) {
	for _, syn := range fieldMappings[kind][field] {
		if v, ok := r[syn]; ok && asString(v) != "" {
			return v, true
		}
	}
	return nil, false
}
