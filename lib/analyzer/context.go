package analyzer

// Scope is the single global scope of a program: an insertion ordered set
// of variable names. The index map is only used for membership and is never
// iterated, so Names is reproducible for identical input.
type Scope struct {
	names []string
	index map[string]struct{}
}

func NewScope() *Scope {
	return &Scope{
		index: make(map[string]struct{}),
	}
}

// Define adds name to the scope. It reports whether the name was new.
func (s *Scope) Define(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

func (s *Scope) IsDefined(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the defined names in first definition order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Scope) Len() int {
	return len(s.names)
}
