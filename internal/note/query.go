package note

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FindByIndex returns the index'th note (1-based) of day's bucket.
// An index past the end clamps to the last note. Returns a zero Ref when
// the bucket is empty, the day is invalid or index < 1.
func (s *Store) FindByIndex(day Day, index int) Ref {
	if index < 1 {
		return Ref{}
	}

	r := s.Head(day)
	for i := 1; i < index && !r.IsZero(); i++ {
		next := s.Next(r)
		if next.IsZero() {
			break
		}

		r = next
	}

	return r
}

// FindByKeyword returns the first note, Sunday to Saturday, whose text
// contains keyword.
func (s *Store) FindByKeyword(keyword string) Ref {
	return s.findFirst(func(n Note) bool {
		return strings.Contains(n.Text, keyword)
	})
}

// FindByText returns the first note whose text equals text exactly.
func (s *Store) FindByText(text string) Ref {
	return s.findFirst(func(n Note) bool {
		return n.Text == text
	})
}

// FindFuzzy returns notes whose text fuzzily matches query, best match first.
func (s *Store) FindFuzzy(query string) []Ref {
	var (
		refs  []Ref
		texts []string
	)

	s.walkAll(func(r Ref, n Note) bool {
		refs = append(refs, r)
		texts = append(texts, n.Text)

		return true
	})

	matches := fuzzy.Find(query, texts)

	out := make([]Ref, len(matches))
	for i, match := range matches {
		out[i] = refs[match.Index]
	}

	return out
}

func (s *Store) findFirst(match func(Note) bool) Ref {
	var found Ref

	s.walkAll(func(r Ref, n Note) bool {
		if match(n) {
			found = r

			return false
		}

		return true
	})

	return found
}
