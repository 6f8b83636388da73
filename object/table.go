package object

import (
	"sync"
)

// Handle is an opaque reference to an object in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Dropper is optionally implemented by values that need cleanup when their
// last reference is released.
type Dropper interface {
	Drop()
}

// Table is a reference-counted object table. Call frames store object and
// string values indirectly as handles; the table keeps each value alive for
// as long as at least one reference is outstanding.
type Table struct {
	entries  []entry
	freeList []Handle
	mu       sync.Mutex
}

type entry struct {
	value any
	refs  uint32
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Insert stores a value with one reference and returns its handle.
func (t *Table) Insert(value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := entry{
		value: value,
		refs:  1,
		valid: true,
	}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get retrieves a value by handle without touching its reference count.
func (t *Table) Get(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// Retain adds one reference to a live handle. Returns false if the handle
// is invalid or already dropped.
func (t *Table) Retain(handle Handle) bool {
	if handle == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return false
	}

	e := &t.entries[idx]
	if !e.valid {
		return false
	}
	e.refs++
	return true
}

// Release drops one reference. When the count reaches zero the entry is
// removed and, if the value implements Dropper, its Drop method runs.
// Returns false if the handle is invalid or already dropped; releasing a
// dead handle is safe.
func (t *Table) Release(handle Handle) bool {
	if handle == 0 {
		return false
	}

	t.mu.Lock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return false
	}

	e := &t.entries[idx]
	if !e.valid {
		t.mu.Unlock()
		return false
	}

	e.refs--
	if e.refs > 0 {
		t.mu.Unlock()
		return true
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	// Run destructors outside the lock; Drop may re-enter the table.
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	return true
}

// Refs returns the current reference count of a handle, or 0 if dead.
func (t *Table) Refs(handle Handle) uint32 {
	if handle == 0 {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return 0
	}

	e := t.entries[idx]
	if !e.valid {
		return 0
	}
	return e.refs
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}
