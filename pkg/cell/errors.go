package cell

import "errors"

// Error kinds returned by tree construction, mutation and lookup. Callers
// match them with errors.Is; the returned errors carry the offending node.
var (
	ErrBadName        = errors.New("bad name")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrWrongChildType = errors.New("wrong child type")
	ErrNotReadable    = errors.New("not readable")
	ErrNotWriteable   = errors.New("not writeable")
	ErrNotExecutable  = errors.New("not executable")
	ErrWrongValueKind = errors.New("wrong value kind")
	ErrBadChildLookup = errors.New("bad child lookup")
)

// Must panics when err is non-nil. It is meant for statically known trees
// such as demo fixtures and tests.
func Must[T any](c T, err error) T {
	if err != nil {
		panic(err)
	}
	return c
}
