package params

// Store owns the parameter set of one active scene. It is not safe for
// concurrent use.
type Store struct {
	set    Set
	subs   map[int]func(Set)
	nextID int
	rev    uint64
}

func NewStore() *Store {
	return &Store{set: Set{}, subs: make(map[int]func(Set))}
}

// Get returns a copy of the current set.
func (s *Store) Get() Set { return s.set.Clone() }

func (s *Store) Value(name string) (Value, bool) {
	v, ok := s.set[name]
	return v, ok
}

// Set overwrites one entry without validation.
func (s *Store) Set(name string, v Value) {
	s.set[name] = v
	s.changed()
}

// Reset replaces the whole set.
func (s *Store) Reset(initial Set) {
	s.set = initial.Clone()
	s.changed()
}

// Subscribe registers fn to be called after every change.
func (s *Store) Subscribe(fn func(Set)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Revision increases on every Set or Reset.
func (s *Store) Revision() uint64 { return s.rev }

// Current exposes the live set to the render loop. Callers must not modify it.
func (s *Store) Current() Set { return s.set }

func (s *Store) changed() {
	s.rev++
	if len(s.subs) == 0 {
		return
	}
	snap := s.set.Clone()
	for _, fn := range s.subs {
		fn(snap)
	}
}
