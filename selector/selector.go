package selector

import (
	"strings"
	"sync"
	"unicode"
)

// Selector is an interned method identifier. Interning the spelling makes
// selectors comparable by pointer identity and gives each one a stable
// numeric id suitable for storage in a call frame slot. Id 0 is reserved
// and always invalid.
type Selector struct {
	spelling string
	base     string
	goName   string
	numArgs  int
	id       uint32
}

var (
	mu    sync.RWMutex
	table = make(map[string]*Selector)
	byID  []*Selector
)

// Sel interns a selector spelling and returns its canonical Selector.
// The same spelling always returns the same pointer.
//
// The spelling follows the colon convention: the base name is everything
// before the first colon, and each colon marks one argument position.
// "add:_:" names a two-argument method, "description" a zero-argument one.
func Sel(spelling string) *Selector {
	mu.RLock()
	s, ok := table[spelling]
	mu.RUnlock()
	if ok {
		return s
	}

	mu.Lock()
	defer mu.Unlock()
	if s, ok := table[spelling]; ok {
		return s
	}

	base, _, _ := strings.Cut(spelling, ":")
	s = &Selector{
		spelling: spelling,
		base:     base,
		goName:   toGoName(base),
		numArgs:  strings.Count(spelling, ":"),
		id:       uint32(len(byID)) + 1,
	}
	table[spelling] = s
	byID = append(byID, s)
	return s
}

// ByID returns the selector interned under id, or (nil, false) if no
// selector has that id.
func ByID(id uint32) (*Selector, bool) {
	if id == 0 {
		return nil, false
	}

	mu.RLock()
	defer mu.RUnlock()

	idx := int(id) - 1
	if idx >= len(byID) {
		return nil, false
	}
	return byID[idx], true
}

// String returns the full spelling, e.g. "add:_:".
func (s *Selector) String() string { return s.spelling }

// Base returns the name part before the first colon.
func (s *Selector) Base() string { return s.base }

// GoName returns the exported Go method name the base maps to
// ("add" -> "Add", "get-value" -> "GetValue").
func (s *Selector) GoName() string { return s.goName }

// NumArgs returns the number of argument positions the spelling declares.
func (s *Selector) NumArgs() int { return s.numArgs }

// ID returns the interned id. Never 0 for a selector obtained via Sel.
func (s *Selector) ID() uint32 { return s.id }

// toGoName converts a selector base name to an exported Go method name.
// Kebab-case segments become words: "get-value" -> "GetValue". A plain
// lowerCamel name is capitalized: "addAll" -> "AddAll".
func toGoName(base string) string {
	if base == "" {
		return ""
	}

	var b strings.Builder
	for _, seg := range strings.Split(base, "-") {
		if seg == "" {
			continue
		}
		runes := []rune(seg)
		b.WriteRune(unicode.ToUpper(runes[0]))
		for _, r := range runes[1:] {
			b.WriteRune(r)
		}
	}
	return b.String()
}
