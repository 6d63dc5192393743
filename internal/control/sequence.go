package control

// Sequence hands out increasing ids shared by every entity kind of a company.
type Sequence struct {
	current int
}

func NewSequence() *Sequence {
	return &Sequence{}
}

// Next increments the counter and returns the new id.
func (s *Sequence) Next() int {
	s.current++
	return s.current
}

func (s *Sequence) Current() int {
	return s.current
}

// Set overrides the counter, e.g. after reloading a persisted snapshot.
func (s *Sequence) Set(id int) {
	s.current = id
}
