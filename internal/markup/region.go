package markup

// activeRegion is one open region on the stack. An empty name denotes an
// anonymous region (opened by a region-scoped operation tag, not @start).
// A nil op denotes a plain @start-opened region with no transform.
type activeRegion struct {
	name string
	op   *Operation
}

// regionStack is the LIFO collection of open regions. Push and pop happen
// at the tail only. Names are not required to be unique; lookup targets
// the most recently opened match.
type regionStack struct {
	regions []activeRegion
}

func (s *regionStack) push(r activeRegion) {
	s.regions = append(s.regions, r)
}

// popTop removes and returns the tail entry
func (s *regionStack) popTop() (activeRegion, bool) {
	if len(s.regions) == 0 {
		return activeRegion{}, false
	}
	r := s.regions[len(s.regions)-1]
	s.regions = s.regions[:len(s.regions)-1]
	return r, true
}

// popByName removes the most recently pushed entry with the given name,
// leaving entries above and below untouched. Reports whether a match was
// found; on no match the stack is unchanged.
func (s *regionStack) popByName(name string) bool {
	for i := len(s.regions) - 1; i >= 0; i-- {
		if s.regions[i].name == name {
			s.regions = append(s.regions[:i], s.regions[i+1:]...)
			return true
		}
	}
	return false
}

// activeOps returns the operations of all entries carrying one, in stack
// order (oldest first). Composition order is bottom-to-top.
func (s *regionStack) activeOps() []*Operation {
	var ops []*Operation
	for i := range s.regions {
		if s.regions[i].op != nil {
			ops = append(ops, s.regions[i].op)
		}
	}
	return ops
}

// names lists the open region names head-to-tail, anonymous entries
// rendered as "anonymous"
func (s *regionStack) names() []string {
	names := make([]string, len(s.regions))
	for i, r := range s.regions {
		if r.name == "" {
			names[i] = "anonymous"
		} else {
			names[i] = r.name
		}
	}
	return names
}

func (s *regionStack) empty() bool {
	return len(s.regions) == 0
}
