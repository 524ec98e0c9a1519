package cell

import "fmt"

// Action is a named zero-argument command guarded by an activity predicate.
type Action struct {
	base
	fn     func()
	active func() bool
}

// NewAction creates an action. A nil active predicate means always active.
func NewAction(name string, fn func(), active func() bool) (*Action, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%s(%s): %w: nil function", KindAction, name, ErrNotExecutable)
	}
	if active == nil {
		active = func() bool { return true }
	}
	return &Action{base: b, fn: fn, active: active}, nil
}

func (*Action) Kind() Kind { return KindAction }
func (*Action) Readable() bool { return false }
func (*Action) Writeable() bool { return false }
func (*Action) Executable() bool { return true }

// Active evaluates the predicate.
func (a *Action) Active() bool { return a.active() }

// Call runs the command if the action is active and reports whether it ran.
func (a *Action) Call() bool {
	if !a.active() {
		return false
	}
	a.fn()
	return true
}

// CallStrict is Call that fails with ErrNotExecutable when inactive.
func (a *Action) CallStrict() error {
	if !a.Call() {
		return fmt.Errorf("%s(%s): %w: inactive", KindAction, a.name, ErrNotExecutable)
	}
	return nil
}

func (a *Action) String() string { return fmt.Sprintf("<Action(%s)>", a.name) }
