// Package roster holds the authoritative list of valid student names.
// The server roster is fixed at startup; the client may keep its own
// divergent copy, which never reaches this package.
package roster

// defaultStudents is the compiled-in roster, replaced with the real list
// once it is collected from the lab.
var defaultStudents = []string{
	"张三",
	"李四",
	"王五",
	"赵六",
	"孙七",
	"周八",
}

// Roster is an ordered set of student names, immutable after construction.
type Roster struct {
	names []string
	index map[string]struct{}
}

// New builds a roster from the provided names, falling back to the
// compiled-in default when none are given. Duplicates collapse to their
// first occurrence.
func New(names []string) *Roster {
	if len(names) == 0 {
		names = defaultStudents
	}
	r := &Roster{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		if _, seen := r.index[name]; seen {
			continue
		}
		r.index[name] = struct{}{}
		r.names = append(r.names, name)
	}
	return r
}

// Names returns the roster in its defined order. The caller gets a copy.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Size returns the number of students.
func (r *Roster) Size() int {
	return len(r.names)
}

// Contains reports membership.
func (r *Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Partition splits the roster against the submitted names. The submitted
// side keeps the caller's order filtered to roster members; the
// not-submitted side follows roster order. Together they cover the roster
// exactly, with no overlap.
func (r *Roster) Partition(submitted []string) (in []string, out []string) {
	seen := make(map[string]struct{}, len(submitted))
	in = make([]string, 0, len(submitted))
	for _, name := range submitted {
		if !r.Contains(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		in = append(in, name)
	}

	out = make([]string, 0, len(r.names)-len(in))
	for _, name := range r.names {
		if _, ok := seen[name]; !ok {
			out = append(out, name)
		}
	}
	return in, out
}
