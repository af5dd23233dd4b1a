package doctree

import (
	"regexp"
	"sort"
	"strings"

	"github.com/grovetools/lens/errors"
)

// MatchLocation says whether a match landed in a node's key or value text.
type MatchLocation int

const (
	LocationKey MatchLocation = iota
	LocationValue
)

// Match is one located occurrence of the search term: the node it was found
// in, whether it hit the key or the value, and the byte offsets of the
// occurrence in that text (the raw key string, or the node's canonical
// value string as returned by ValueString).
type Match struct {
	Node     *Node
	Location MatchLocation
	Start    int
	End      int
}

// SearchOptions selects the matching policy. The default (zero value) is a
// case-insensitive literal substring search.
type SearchOptions struct {
	// Regex treats the term as a case-insensitive regular expression.
	Regex bool
	// GroupsOnly narrows regexp highlighting to the captured-group
	// contents: the group substrings found across the whole search are
	// collected, deduplicated, and re-matched as a longest-first literal
	// alternation. This approximates group-only highlighting without
	// tracking per-occurrence group positions through the display layer.
	GroupsOnly bool
}

type searchState struct {
	// gen supersedes in-flight scans: a scan only applies its results if no
	// newer Search or BuildNodes call bumped the counter while it ran.
	gen     uint64
	term    string
	opts    SearchOptions
	matches []Match
	focused int
}

func newSearchState() searchState {
	return searchState{focused: -1}
}

func (st *searchState) reset() {
	st.gen++
	st.term = ""
	st.matches = nil
	st.focused = -1
}

// SearchTerm returns the active search term ("" when no search is active).
func (s *Store) SearchTerm() string { return s.search.term }

// SearchResults returns the ordered match list: tree pre-order across nodes,
// key before value within a node, left to right within a text. The slice is
// a read-only snapshot.
func (s *Store) SearchResults() []Match { return s.search.matches }

// FocusedSearchResult returns the currently focused match, if any.
func (s *Store) FocusedSearchResult() (Match, bool) {
	if s.search.focused < 0 || s.search.focused >= len(s.search.matches) {
		return Match{}, false
	}
	return s.search.matches[s.search.focused], true
}

// Search replaces the search state. Every node of the full tree is scanned,
// in pre-order and independent of current collapse state, so matches inside
// collapsed subtrees are found too. An empty term clears the match list.
// When there are matches, focus lands on the first one.
//
// A malformed regular expression yields a PATTERN_INVALID error and empty
// results; the store stays consistent and a notification is still emitted,
// so the caller can surface "no matches" plus the error.
func (s *Store) Search(term string, opts SearchOptions) error {
	s.search.gen++
	gen := s.search.gen
	s.search.term = term
	s.search.opts = opts

	if term == "" {
		s.clearFocusFlag()
		s.search.matches = nil
		s.search.focused = -1
		s.notify(Event{Kind: EventSearchUpdated})
		return nil
	}

	matcher, err := compileMatcher(term, opts)
	if err != nil {
		s.clearFocusFlag()
		s.search.matches = nil
		s.search.focused = -1
		s.notify(Event{Kind: EventSearchUpdated})
		return err
	}

	if opts.Regex && opts.GroupsOnly {
		if narrowed := s.narrowToGroups(matcher); narrowed != nil {
			matcher = narrowed
		}
	}

	matches := s.scan(matcher)

	// A newer Search or BuildNodes superseded this scan; drop its results.
	if gen != s.search.gen {
		return nil
	}

	s.clearFocusFlag()
	s.search.matches = matches
	if len(matches) > 0 {
		s.search.focused = 0
		s.applyFocus()
	} else {
		s.search.focused = -1
	}
	s.notify(Event{Kind: EventSearchUpdated})
	return nil
}

// FocusNextSearchResult advances focus cyclically over the match list and
// asks the rendering collaborator to scroll to the focused node. No-op when
// there are no matches.
func (s *Store) FocusNextSearchResult() {
	n := len(s.search.matches)
	if n == 0 {
		return
	}
	s.clearFocusFlag()
	s.search.focused = (s.search.focused + 1) % n
	s.applyFocus()
	m := s.search.matches[s.search.focused]
	s.notify(Event{Kind: EventSearchFocused, Match: &m})
}

// FocusPreviousSearchResult retreats focus cyclically over the match list.
func (s *Store) FocusPreviousSearchResult() {
	n := len(s.search.matches)
	if n == 0 {
		return
	}
	s.clearFocusFlag()
	s.search.focused = (s.search.focused - 1 + n) % n
	s.applyFocus()
	m := s.search.matches[s.search.focused]
	s.notify(Event{Kind: EventSearchFocused, Match: &m})
}

// applyFocus sets the focused node's flag and scrolls it into view when it
// is present in the display list. Matches are held by node identity, so an
// intervening collapse/expand never leaves focus pointing at a stale index;
// a node hidden under a collapsed ancestor simply isn't scrolled to.
func (s *Store) applyFocus() {
	m := s.search.matches[s.search.focused]
	m.Node.Focus(true)
	if s.scrollFunc != nil {
		if i := s.indexOf(m.Node); i >= 0 {
			s.scrollFunc(i)
		}
	}
}

func (s *Store) clearFocusFlag() {
	if m, ok := s.FocusedSearchResult(); ok {
		m.Node.Focus(false)
	}
}

// matcher finds all non-overlapping occurrences in a text, returning
// start/end byte-offset pairs in left-to-right order.
type matcher interface {
	find(text string) [][2]int
	groups(text string) []string
}

func compileMatcher(term string, opts SearchOptions) (matcher, error) {
	if !opts.Regex {
		return literalMatcher{needle: strings.ToLower(term)}, nil
	}
	re, err := regexp.Compile("(?i)" + term)
	if err != nil {
		return nil, errors.PatternInvalid(term, err)
	}
	return regexMatcher{re: re}, nil
}

// literalMatcher does case-insensitive substring search. Offsets index the
// lowercased text, which for the ASCII keys and values this viewer deals
// with are the same byte offsets as the original.
type literalMatcher struct {
	needle string
}

func (m literalMatcher) find(text string) [][2]int {
	if m.needle == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var out [][2]int
	start := 0
	for {
		i := strings.Index(lower[start:], m.needle)
		if i < 0 {
			return out
		}
		at := start + i
		out = append(out, [2]int{at, at + len(m.needle)})
		start = at + len(m.needle)
	}
}

func (m literalMatcher) groups(string) []string { return nil }

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) find(text string) [][2]int {
	locs := m.re.FindAllStringIndex(text, -1)
	out := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		if loc[1] > loc[0] { // skip empty-width matches
			out = append(out, [2]int{loc[0], loc[1]})
		}
	}
	return out
}

func (m regexMatcher) groups(text string) []string {
	if m.re.NumSubexp() == 0 {
		return nil
	}
	var out []string
	for _, sub := range m.re.FindAllStringSubmatchIndex(text, -1) {
		for g := 1; g <= m.re.NumSubexp(); g++ {
			lo, hi := sub[2*g], sub[2*g+1]
			if lo >= 0 && hi > lo {
				out = append(out, text[lo:hi])
			}
		}
	}
	return out
}

// narrowToGroups implements the "highlight only group contents" refinement:
// collect every captured-group substring across the whole tree, dedupe, and
// build a longest-first literal alternation so greedy matches stay maximal.
// Returns nil when the pattern has no groups or nothing was captured.
func (s *Store) narrowToGroups(m matcher) matcher {
	seen := make(map[string]bool)
	var literals []string
	s.walk(func(n *Node) {
		texts := []string{n.Key()}
		if !n.IsRoot() {
			texts = append(texts, n.ValueString())
		}
		for _, text := range texts {
			for _, g := range m.groups(text) {
				if !seen[g] {
					seen[g] = true
					literals = append(literals, g)
				}
			}
		}
	})
	if len(literals) == 0 {
		return nil
	}

	sort.Slice(literals, func(i, j int) bool {
		if len(literals[i]) != len(literals[j]) {
			return len(literals[i]) > len(literals[j])
		}
		return literals[i] < literals[j]
	})
	quoted := make([]string, len(literals))
	for i, lit := range literals {
		quoted[i] = regexp.QuoteMeta(lit)
	}
	// All alternatives are quoted literals, so compilation cannot fail.
	re := regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")")
	return regexMatcher{re: re}
}

// scan walks the full tree in pre-order and collects matches, key before
// value for each node. Root nodes only expose their key text; scalar values
// are matched against their canonical display string.
func (s *Store) scan(m matcher) []Match {
	var matches []Match
	s.walk(func(n *Node) {
		for _, loc := range m.find(n.Key()) {
			matches = append(matches, Match{Node: n, Location: LocationKey, Start: loc[0], End: loc[1]})
		}
		if n.IsRoot() {
			return
		}
		for _, loc := range m.find(n.ValueString()) {
			matches = append(matches, Match{Node: n, Location: LocationValue, Start: loc[0], End: loc[1]})
		}
	})
	return matches
}
