package cli

import (
	"strings"

	"github.com/calvinalkan/weeknotes/internal/note"
)

const findPrompt = "Method (i/k/t/l/z/c/h): "

// findResult is what the find sub-menu produced.
// done is false when the user cancelled or asked for help.
type findResult struct {
	refs []note.Ref
	done bool
}

// first returns the best match, or a zero Ref.
func (f findResult) first() note.Ref {
	if len(f.refs) == 0 {
		return note.Ref{}
	}

	return f.refs[0]
}

// find runs the find sub-menu. Invalid selectors re-prompt.
func (r *REPL) find() (findResult, error) {
	for {
		line, err := r.in.Prompt(findPrompt)
		if err != nil {
			return findResult{}, err
		}

		switch strings.TrimSpace(line) {
		case "i":
			return r.findByIndex()
		case "k":
			keyword, err := r.promptText("Keyword")
			if err != nil {
				return findResult{}, err
			}

			return single(r.store.FindByKeyword(keyword)), nil
		case "t":
			text, err := r.promptText("Text")
			if err != nil {
				return findResult{}, err
			}

			return single(r.store.FindByText(text)), nil
		case "l":
			day, err := r.promptDay()
			if err != nil {
				return findResult{}, err
			}

			return single(r.store.Last(day)), nil
		case "z":
			query, err := r.promptText("Search")
			if err != nil {
				return findResult{}, err
			}

			return findResult{refs: r.store.FindFuzzy(query), done: true}, nil
		case "c":
			return findResult{}, nil
		case "h":
			r.printFindHelp()

			return findResult{}, nil
		default:
			r.io.Println("Invalid command entered. Please try again.")
		}
	}
}

func (r *REPL) findByIndex() (findResult, error) {
	day, err := r.promptDay()
	if err != nil {
		return findResult{}, err
	}

	count := r.store.Count(day)
	if count == 0 {
		r.io.Printf("The list for %s is empty.\n", day)

		return findResult{done: true}, nil
	}

	index, err := r.promptIndex(count)
	if err != nil {
		return findResult{}, err
	}

	return single(r.store.FindByIndex(day, index)), nil
}

func single(ref note.Ref) findResult {
	if ref.IsZero() {
		return findResult{done: true}
	}

	return findResult{refs: []note.Ref{ref}, done: true}
}

func (r *REPL) printFindHelp() {
	r.io.Println("Help for methods of finding notes.")
	r.io.Println("i - Find by index")
	r.io.Println("k - Find by keyword")
	r.io.Println("t - Find by full text")
	r.io.Println("l - Get the last item of a day")
	r.io.Println("z - Fuzzy search, lists every match")
	r.io.Println("c - Cancel this command")
	r.io.Println("h - Print this help text")
}
