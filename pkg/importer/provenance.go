package importer

import (
	"fmt"
	"strings"

	"github.com/mintmark/mintmark/pkg/collection"
)

// DefaultSource is the name of the external catalog recorded in provenance
// markers.
const DefaultSource = "Numista"

// Marker formats the provenance marker embedded in an imported item's notes.
// This marker is the only duplicate-detection key for catalog imports: a
// re-import of the same external id is recognized purely by finding this
// substring in an existing item's notes. Known weak key; kept for
// compatibility with previously stored collections.
func Marker(source string, externalID int) string {
	return fmt.Sprintf("%s ID: %d", source, externalID)
}

// findImported returns the stored item carrying the provenance marker for
// this exact external id, or nil. A digit-boundary check keeps "ID: 4" from
// matching "ID: 42".
func findImported(items *collection.Items, source string, externalID int) *collection.Item {
	marker := Marker(source, externalID)

	var found *collection.Item
	items.ForEach(func(_ string, item *collection.Item) bool {
		notes := item.Notes
		for idx := strings.Index(notes, marker); idx >= 0; idx = strings.Index(notes, marker) {
			rest := notes[idx+len(marker):]
			if rest == "" || rest[0] < '0' || rest[0] > '9' {
				found = item
				return false
			}
			notes = rest
		}
		return true
	})
	return found
}

// importNotes builds the notes text for an imported record. The provenance
// marker always appears verbatim; quantity is appended only when the
// collector holds more than one specimen.
func importNotes(source string, externalID, quantity int) string {
	notes := fmt.Sprintf("Imported from %s. %s", source, Marker(source, externalID))
	if quantity > 1 {
		notes += fmt.Sprintf(" (x%d)", quantity)
	}
	return notes
}
