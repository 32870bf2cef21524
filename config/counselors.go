package config

// CounselorRegistry answers membership and identity questions about the
// configured counselor roster.
type CounselorRegistry struct {
	byID map[string]Counselor
	ids  []string
}

// NewCounselorRegistry builds a registry from the loaded roster.
func NewCounselorRegistry(roster []Counselor) *CounselorRegistry {
	reg := &CounselorRegistry{byID: make(map[string]Counselor, len(roster))}
	for _, c := range roster {
		if c.ID == "" {
			continue
		}
		if _, dup := reg.byID[c.ID]; dup {
			continue
		}
		reg.byID[c.ID] = c
		reg.ids = append(reg.ids, c.ID)
	}
	return reg
}

// Lookup returns the counselor for the given ID.
func (r *CounselorRegistry) Lookup(id string) (Counselor, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Knows reports whether the ID belongs to the configured roster.
func (r *CounselorRegistry) Knows(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns the roster IDs in configuration order.
func (r *CounselorRegistry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}
