package diagram

import "github.com/google/uuid"

// EnsureUniqueIDs gives every shape in the document a unique id.
// Shapes with an empty id, or whose id was already used by an earlier shape,
// receive a fresh UUID. The first holder of an id keeps it. It returns the
// number of shapes that were reassigned.
func EnsureUniqueIDs(d *Document) int {
	if d == nil || len(d.Shapes) == 0 {
		return 0
	}

	used := make(map[string]bool, len(d.Shapes))
	for _, s := range d.Shapes {
		if id := s.Meta().ID; id != "" {
			used[id] = false
		}
	}

	reassigned := 0
	for i, s := range d.Shapes {
		id := s.Meta().ID
		if id != "" && !used[id] {
			used[id] = true
			continue
		}

		fresh := uuid.NewString()
		for _, taken := used[fresh]; taken; _, taken = used[fresh] {
			fresh = uuid.NewString()
		}
		used[fresh] = true
		d.Shapes[i] = WithID(s, fresh)
		reassigned++
	}

	return reassigned
}
