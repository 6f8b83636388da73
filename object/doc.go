// Package object implements a reference-counted handle table for values
// that cross the call frame boundary.
//
// A call frame stores every slot as fixed-size bytes, so object references
// and strings are written to the frame indirectly as table handles. Each
// insertion carries one reference owned by the frame; retaining a handle on
// behalf of a caller keeps the value registered past the owning
// invocation's release.
package object
