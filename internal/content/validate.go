package content

import (
	"fmt"
	"strings"
)

// validateBooks performs the structural checks a catalog needs before it
// can be indexed. All problems are reported together.
func validateBooks(books []WordBook) error {
	var errs []string

	bookKeys := make(map[string]bool, len(books))
	wordIDs := make(map[string]string)

	for _, b := range books {
		key := b.Key()
		if key == "" {
			errs = append(errs, "word book without id or name")
		} else if bookKeys[key] {
			errs = append(errs, fmt.Sprintf("duplicate word book %q", key))
		}
		bookKeys[key] = true

		units := make(map[string]bool, len(b.Units))
		for _, u := range b.Units {
			if units[u.Unit] {
				errs = append(errs, fmt.Sprintf("book %q: duplicate unit %q", key, u.Unit))
			}
			units[u.Unit] = true

			for _, w := range u.Words {
				switch {
				case w.ID == "":
					errs = append(errs, fmt.Sprintf("book %q unit %q: word %q has no id", key, u.Unit, w.Word))
				case wordIDs[w.ID] != "":
					errs = append(errs, fmt.Sprintf("duplicate word id %q (%s, %s)", w.ID, wordIDs[w.ID], key))
				default:
					wordIDs[w.ID] = key
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
