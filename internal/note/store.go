package note

// Ref is a handle to a note held by a [Store]. The zero Ref refers to nothing.
//
// A Ref stays valid until its note is deleted. After that the store rejects
// it, even if the arena slot has been reused by a newer note.
type Ref struct {
	slot int // arena index + 1; 0 means none
	gen  uint32
}

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool {
	return r.slot == 0
}

// record is one arena entry. prev/next are Refs into the same arena.
type record struct {
	note Note
	prev Ref
	next Ref
	gen  uint32
	live bool
}

type bucket struct {
	head  Ref
	tail  Ref
	count int
}

// Store is the day bucket store: seven doubly-linked lists over one arena.
//
// Invariants: every note reachable from bucket i has Day == i+1, lists are
// acyclic, the head has a zero prev and the tail a zero next.
//
// The zero value is an empty, ready-to-use store.
type Store struct {
	arena   []record
	free    []int
	buckets [DaysInWeek]bucket
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append links n after the current last note of its day's bucket.
// If the bucket is empty n becomes the head. n must come from [New] or
// otherwise have a valid day; Append panics on an invalid day.
func (s *Store) Append(n Note) Ref {
	if !n.Day.Valid() {
		panic("note: Append with invalid day " + n.Day.String())
	}

	ref := s.alloc(n)
	b := &s.buckets[n.Day.index()]

	if b.head.IsZero() {
		b.head = ref
	} else {
		s.rec(b.tail).next = ref
		s.rec(ref).prev = b.tail
	}

	b.tail = ref
	b.count++

	return ref
}

// Delete unlinks the note at r from its bucket, reconnecting its neighbours,
// and releases its storage. Deleting the head promotes the next note.
// Returns the removed note, or [ErrNothingToDelete] if r is zero or stale.
func (s *Store) Delete(r Ref) (Note, error) {
	rec := s.lookup(r)
	if rec == nil {
		return Note{}, ErrNothingToDelete
	}

	b := &s.buckets[rec.note.Day.index()]

	if rec.prev.IsZero() {
		b.head = rec.next
	} else {
		s.rec(rec.prev).next = rec.next
	}

	if rec.next.IsZero() {
		b.tail = rec.prev
	} else {
		s.rec(rec.next).prev = rec.prev
	}

	b.count--

	removed := rec.note
	s.release(r)

	return removed, nil
}

// Get returns the note at r. ok is false for zero or stale refs.
func (s *Store) Get(r Ref) (Note, bool) {
	rec := s.lookup(r)
	if rec == nil {
		return Note{}, false
	}

	return rec.note, true
}

// Head returns the first note of day's bucket, or a zero Ref.
func (s *Store) Head(day Day) Ref {
	if !day.Valid() {
		return Ref{}
	}

	return s.buckets[day.index()].head
}

// Last returns the last note of day's bucket, or a zero Ref if it is empty.
func (s *Store) Last(day Day) Ref {
	if !day.Valid() {
		return Ref{}
	}

	return s.buckets[day.index()].tail
}

// Next returns the note after r in its bucket, or a zero Ref.
func (s *Store) Next(r Ref) Ref {
	rec := s.lookup(r)
	if rec == nil {
		return Ref{}
	}

	return rec.next
}

// Prev returns the note before r in its bucket, or a zero Ref.
func (s *Store) Prev(r Ref) Ref {
	rec := s.lookup(r)
	if rec == nil {
		return Ref{}
	}

	return rec.prev
}

// Count returns the number of notes in day's bucket.
func (s *Store) Count(day Day) int {
	if !day.Valid() {
		return 0
	}

	return s.buckets[day.index()].count
}

// Total returns the number of notes across all buckets.
func (s *Store) Total() int {
	total := 0
	for i := range s.buckets {
		total += s.buckets[i].count
	}

	return total
}

// Notes returns day's notes in list order.
func (s *Store) Notes(day Day) []Note {
	var out []Note

	s.walk(day, func(_ Ref, n Note) bool {
		out = append(out, n)

		return true
	})

	return out
}

// All returns every note, Sunday to Saturday, each day in list order.
func (s *Store) All() []Note {
	out := make([]Note, 0, s.Total())

	for day := Sunday; day <= Saturday; day++ {
		s.walk(day, func(_ Ref, n Note) bool {
			out = append(out, n)

			return true
		})
	}

	return out
}

// walk calls fn for each note of day in order until fn returns false.
// Returns false if fn stopped the walk.
func (s *Store) walk(day Day, fn func(Ref, Note) bool) bool {
	for r := s.Head(day); !r.IsZero(); {
		rec := s.rec(r)
		if !fn(r, rec.note) {
			return false
		}

		r = rec.next
	}

	return true
}

// walkAll walks every bucket in day order.
func (s *Store) walkAll(fn func(Ref, Note) bool) {
	for day := Sunday; day <= Saturday; day++ {
		if !s.walk(day, fn) {
			return
		}
	}
}

// --- arena ---

func (s *Store) alloc(n Note) Ref {
	var idx int

	if k := len(s.free); k > 0 {
		idx = s.free[k-1]
		s.free = s.free[:k-1]
	} else {
		s.arena = append(s.arena, record{})
		idx = len(s.arena) - 1
	}

	rec := &s.arena[idx]
	rec.note = n
	rec.prev = Ref{}
	rec.next = Ref{}
	rec.live = true

	return Ref{slot: idx + 1, gen: rec.gen}
}

func (s *Store) release(r Ref) {
	idx := r.slot - 1
	rec := &s.arena[idx]
	*rec = record{gen: rec.gen + 1}
	s.free = append(s.free, idx)
}

// lookup returns the live record for r, or nil.
func (s *Store) lookup(r Ref) *record {
	if r.slot <= 0 || r.slot > len(s.arena) {
		return nil
	}

	rec := &s.arena[r.slot-1]
	if !rec.live || rec.gen != r.gen {
		return nil
	}

	return rec
}

// rec returns the record for a Ref known to be live.
func (s *Store) rec(r Ref) *record {
	return &s.arena[r.slot-1]
}
