package store

import (
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// nextID returns the next free identifier for a collection: 1 when empty,
// otherwise max(valid ids)+1. Invalid ids are ignored rather than rejected.
func nextID(ids []models.ID) models.ID {
	max := models.ID(0)
	for _, id := range ids {
		if id.Valid() && id > max {
			max = id
		}
	}
	return max + 1
}

// repairIDs walks the collection once, first giving fresh ids to records
// whose id is missing or non-numeric, then reassigning later occurrences of
// duplicate ids. Relative order is preserved and the operation is
// idempotent. Returns true when anything changed.
func repairIDs[T any](items []T, getID func(*T) models.ID, setID func(*T, models.ID)) bool {
	ids := make([]models.ID, 0, len(items))
	for i := range items {
		ids = append(ids, getID(&items[i]))
	}
	next := nextID(ids)

	changed := false
	seen := make(map[models.ID]bool, len(items))
	for i := range items {
		id := getID(&items[i])
		if !id.Valid() || seen[id] {
			id = next
			next++
			setID(&items[i], id)
			changed = true
		}
		seen[id] = true
	}
	return changed
}

// collectIDs extracts every id from a collection.
func collectIDs[T any](items []T, getID func(*T) models.ID) []models.ID {
	ids := make([]models.ID, 0, len(items))
	for i := range items {
		ids = append(ids, getID(&items[i]))
	}
	return ids
}
