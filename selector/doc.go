// Package selector implements interned method identifiers. A selector is
// an opaque token naming a method by spelling and arity, looked up and
// compared by identity rather than by string comparison.
package selector
