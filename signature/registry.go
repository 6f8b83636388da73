package signature

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/mman/dynamic/selector"
)

// Registry caches resolved signatures per (target type, selector) pair.
// Lookups are lazy: the first resolution of a pair pays for the metadata
// walk, later ones hit the cache. Safe for concurrent use.
type Registry struct {
	cache map[cacheKey]*Signature
	mu    sync.RWMutex
}

type cacheKey struct {
	target reflect.Type
	sel    *selector.Selector
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[cacheKey]*Signature),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the root package.
func Default() *Registry {
	return defaultRegistry
}

// Resolve returns the signature of sel on target's type, resolving and
// caching it on first use. Resolution failures are not cached.
func (r *Registry) Resolve(target any, sel *selector.Selector) (*Signature, error) {
	t := reflect.TypeOf(target)
	key := cacheKey{target: t, sel: sel}

	r.mu.RLock()
	sig, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return sig, nil
	}

	sig, err := resolve(t, sel)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = sig
	r.mu.Unlock()
	return sig, nil
}

// Preresolve warms the cache with every resolvable method of target,
// returning the number of signatures added. Useful at startup when lookup
// latency on the first invocation matters.
func (r *Registry) Preresolve(target any) int {
	n := 0
	for _, info := range Methods(target) {
		if _, err := r.Resolve(target, selector.Sel(info.Selector)); err == nil {
			n++
		}
	}
	return n
}

// MethodInfo describes one resolvable method for introspection and
// tooling.
type MethodInfo struct {
	Selector   string
	GoName     string
	ArgTypes   string // descriptor codes of the user arguments
	ReturnType Kind
}

// Methods lists every exported method of target's type that the resolver
// can express, in selector order.
func Methods(target any) []MethodInfo {
	t := reflect.TypeOf(target)
	if t == nil {
		return nil
	}

	infos := make([]MethodInfo, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		mt := m.Type
		if mt.IsVariadic() || mt.NumOut() > 1 {
			continue
		}

		var args strings.Builder
		for j := 1; j < mt.NumIn(); j++ {
			args.WriteByte(byte(kindOf(mt.In(j))))
		}

		ret := KindVoid
		if mt.NumOut() == 1 {
			ret = kindOf(mt.Out(0))
		}

		infos = append(infos, MethodInfo{
			Selector:   spellingFor(m.Name, mt.NumIn()-1),
			GoName:     m.Name,
			ArgTypes:   args.String(),
			ReturnType: ret,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Selector < infos[j].Selector })
	return infos
}

// spellingFor builds the canonical selector spelling of a Go method:
// "Add" with two arguments becomes "add:_:".
func spellingFor(goName string, numArgs int) string {
	runes := []rune(goName)
	runes[0] = unicode.ToLower(runes[0])

	var b strings.Builder
	b.WriteString(string(runes))
	for i := 0; i < numArgs; i++ {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteByte(':')
	}
	return b.String()
}
