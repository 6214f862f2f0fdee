package note_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/weeknotes/internal/note"
)

func mustNew(t *testing.T, text string, day note.Day) note.Note {
	t.Helper()

	n, err := note.New(text, day)
	require.NoError(t, err, "New(%q, %v)", text, day)

	return n
}

func texts(notes []note.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Text)
	}

	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	long := ""
	for range note.MaxTextLength {
		long += "é"
	}

	tests := []struct {
		name    string
		text    string
		day     note.Day
		wantErr error
	}{
		{"ok", "Buy milk", note.Monday, nil},
		{"exactly max runes", long, note.Sunday, nil},
		{"too long", long + "x", note.Sunday, note.ErrTextTooLong},
		{"empty", "", note.Sunday, note.ErrTextEmpty},
		{"newline", "a\nb", note.Sunday, note.ErrTextMultiline},
		{"day zero", "x", 0, note.ErrInvalidDay},
		{"day eight", "x", 8, note.ErrInvalidDay},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := note.New(testCase.text, testCase.day)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, note.Note{Text: testCase.text, Day: testCase.day}, got)
		})
	}
}

func TestDayString(t *testing.T) {
	t.Parallel()

	if got, want := note.Sunday.String(), "Sunday"; got != want {
		t.Errorf("Sunday.String()=%q, want=%q", got, want)
	}

	if got, want := note.Saturday.String(), "Saturday"; got != want {
		t.Errorf("Saturday.String()=%q, want=%q", got, want)
	}

	if got, want := note.Day(9).String(), "Day(9)"; got != want {
		t.Errorf("Day(9).String()=%q, want=%q", got, want)
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	day, err := note.ParseDay(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, note.Monday, day)

	for _, in := range []string{"0", "8", "-1", "mon", ""} {
		_, err := note.ParseDay(in)
		assert.ErrorIs(t, err, note.ErrInvalidDay, "ParseDay(%q)", in)
	}
}

func TestNoteString(t *testing.T) {
	t.Parallel()

	n := note.Note{Text: "Gym", Day: note.Friday}

	if got, want := n.String(), "Friday    : Gym"; got != want {
		t.Errorf("String()=%q, want=%q", got, want)
	}
}

func TestAppendKeepsInsertionOrderAndCount(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, 1, 2, 5, 17} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			t.Parallel()

			s := note.NewStore()
			want := make([]string, 0, count)

			for i := range count {
				text := fmt.Sprintf("note %d", i)
				s.Append(mustNew(t, text, note.Wednesday))
				want = append(want, text)
			}

			if got, want := s.Count(note.Wednesday), count; got != want {
				t.Fatalf("Count=%d, want=%d", got, want)
			}

			if diff := cmp.Diff(want, texts(s.Notes(note.Wednesday))); count > 0 && diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}

			assert.Zero(t, s.Count(note.Thursday), "other buckets stay empty")
		})
	}
}

func TestAppendLinksNeighbours(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	a := s.Append(mustNew(t, "a", note.Monday))
	b := s.Append(mustNew(t, "b", note.Monday))
	c := s.Append(mustNew(t, "c", note.Monday))

	assert.Equal(t, a, s.Head(note.Monday))
	assert.Equal(t, c, s.Last(note.Monday))
	assert.True(t, s.Prev(a).IsZero(), "head has no prev")
	assert.True(t, s.Next(c).IsZero(), "tail has no next")
	assert.Equal(t, b, s.Next(a))
	assert.Equal(t, a, s.Prev(b))
	assert.Equal(t, c, s.Next(b))
	assert.Equal(t, b, s.Prev(c))
}

func TestDeleteOnlyNoteEmptiesBucket(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	r := s.Append(mustNew(t, "solo", note.Tuesday))

	removed, err := s.Delete(r)
	require.NoError(t, err)

	assert.Equal(t, "solo", removed.Text)
	assert.True(t, s.Head(note.Tuesday).IsZero())
	assert.True(t, s.Last(note.Tuesday).IsZero())
	assert.Zero(t, s.Count(note.Tuesday))
}

func TestDeleteHeadPromotesSecond(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	first := s.Append(mustNew(t, "first", note.Monday))
	second := s.Append(mustNew(t, "second", note.Monday))
	s.Append(mustNew(t, "third", note.Monday))

	_, err := s.Delete(first)
	require.NoError(t, err)

	assert.Equal(t, second, s.Head(note.Monday))
	assert.True(t, s.Prev(second).IsZero(), "new head must have no prev")
	assert.Equal(t, []string{"second", "third"}, texts(s.Notes(note.Monday)))
}

func TestDeleteMiddleReconnectsBothSides(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	a := s.Append(mustNew(t, "a", note.Monday))
	b := s.Append(mustNew(t, "b", note.Monday))
	c := s.Append(mustNew(t, "c", note.Monday))

	_, err := s.Delete(b)
	require.NoError(t, err)

	assert.Equal(t, c, s.Next(a))
	assert.Equal(t, a, s.Prev(c))
	assert.Equal(t, 2, s.Count(note.Monday))
}

func TestDeleteTailMovesTail(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	a := s.Append(mustNew(t, "a", note.Monday))
	b := s.Append(mustNew(t, "b", note.Monday))

	_, err := s.Delete(b)
	require.NoError(t, err)

	assert.Equal(t, a, s.Last(note.Monday))
	assert.True(t, s.Next(a).IsZero())

	c := s.Append(mustNew(t, "c", note.Monday))
	assert.Equal(t, []string{"a", "c"}, texts(s.Notes(note.Monday)))
	assert.Equal(t, a, s.Prev(c))
}

func TestDeleteZeroOrStaleRef(t *testing.T) {
	t.Parallel()

	s := note.NewStore()

	_, err := s.Delete(note.Ref{})
	require.ErrorIs(t, err, note.ErrNothingToDelete)

	old := s.Append(mustNew(t, "old", note.Sunday))
	_, err = s.Delete(old)
	require.NoError(t, err)

	// Reuses the freed arena slot.
	fresh := s.Append(mustNew(t, "fresh", note.Sunday))

	_, err = s.Delete(old)
	require.ErrorIs(t, err, note.ErrNothingToDelete)

	got, ok := s.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, "fresh", got.Text)
}

func TestTotalAndAll(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	s.Append(mustNew(t, "sat", note.Saturday))
	s.Append(mustNew(t, "sun", note.Sunday))
	s.Append(mustNew(t, "mon", note.Monday))
	s.Append(mustNew(t, "sun2", note.Sunday))

	assert.Equal(t, 4, s.Total())

	want := []note.Note{
		{Text: "sun", Day: note.Sunday},
		{Text: "sun2", Day: note.Sunday},
		{Text: "mon", Day: note.Monday},
		{Text: "sat", Day: note.Saturday},
	}

	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Fatalf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendPanicsOnInvalidDay(t *testing.T) {
	t.Parallel()

	s := note.NewStore()

	assert.Panics(t, func() {
		s.Append(note.Note{Text: "x", Day: 0})
	})
}

func TestInvalidDayAccessorsAreEmpty(t *testing.T) {
	t.Parallel()

	s := note.NewStore()
	s.Append(mustNew(t, "x", note.Sunday))

	assert.Zero(t, s.Count(0))
	assert.True(t, s.Head(8).IsZero())
	assert.True(t, s.Last(-1).IsZero())
	assert.Nil(t, s.Notes(0))

	if _, ok := s.Get(note.Ref{}); ok {
		t.Fatal("Get(zero ref) should report not found")
	}
}
