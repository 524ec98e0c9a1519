package cell

import "fmt"

// SelectorName is the name of the enum that picks a union's visible branch.
const SelectorName = "type"

// Branch is one named alternative of a Union.
type Branch struct {
	Name  string
	Cells []Cell
}

// Union is a tagged variant. Only the selected branch is visible, followed
// by the selector enum itself. Every branch keeps its own children, so
// switching away and back restores the earlier state.
type Union struct {
	base
	selector *Enum
	branches map[string]*Container
}

// NewUnion creates a union over branches. The branch named selected is
// visible first; an empty selected picks the first branch.
func NewUnion(name, selected string, branches ...Branch) (*Union, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, fmt.Errorf("%s(%s): %w: no branches", KindUnion, name, ErrBadName)
	}
	u := &Union{base: b, branches: make(map[string]*Container, len(branches))}
	names := make([]string, 0, len(branches))
	for _, br := range branches {
		if _, dup := u.branches[br.Name]; dup {
			return nil, fmt.Errorf("%s(%s): %w: branch %q", KindUnion, name, ErrDuplicateName, br.Name)
		}
		for _, c := range br.Cells {
			if c != nil && c.Name() == SelectorName {
				return nil, fmt.Errorf("%s(%s): %w: %q is reserved for the selector", KindUnion, name, ErrDuplicateName, SelectorName)
			}
		}
		list, err := NewContainer(br.Name, br.Cells...)
		if err != nil {
			return nil, fmt.Errorf("%s(%s): %w", KindUnion, name, err)
		}
		u.branches[br.Name] = list
		names = append(names, br.Name)
	}
	if selected == "" {
		selected = names[0]
	}
	u.selector, err = NewEnum(SelectorName, names, selected)
	if err != nil {
		return nil, fmt.Errorf("%s(%s): %w", KindUnion, name, err)
	}
	return u, nil
}

func (*Union) Kind() Kind { return KindUnion }
func (*Union) Readable() bool { return false }
func (*Union) Writeable() bool { return false }
func (*Union) Executable() bool { return false }

// Selector returns the branch selector enum.
func (u *Union) Selector() *Enum { return u.selector }

// Selected returns the name of the visible branch.
func (u *Union) Selected() string {
	v, _ := u.selector.Get()
	return v
}

// Branches returns the declared branch names in order.
func (u *Union) Branches() []string { return u.selector.Keys() }

// Select switches the visible branch. Unknown names fail with
// ErrWrongValueKind and leave the selection unchanged.
func (u *Union) Select(branch string) error {
	return u.selector.Set(branch)
}

func (u *Union) current() *Container {
	return u.branches[u.Selected()]
}

// Append adds c to the selected branch.
func (u *Union) Append(c Cell) error {
	if c != nil && c.Name() == SelectorName {
		return fmt.Errorf("%w: %q is reserved for the selector", ErrDuplicateName, SelectorName)
	}
	return u.current().Append(c)
}

func (u *Union) Len() int { return u.current().Len() + 1 }

// Keys returns the visible child names, selector last.
func (u *Union) Keys() []string {
	return append(u.current().Keys(), SelectorName)
}

// Values returns the visible children, selector last.
func (u *Union) Values() []Cell {
	return append(u.current().Values(), u.selector)
}

// Contains reports whether name is visible in the selected branch.
func (u *Union) Contains(name string) bool {
	return name == SelectorName || u.current().Contains(name)
}

// Child looks name up in the selected branch. Cells of other branches
// are not visible.
func (u *Union) Child(name string) (Cell, error) {
	if name == SelectorName {
		return u.selector, nil
	}
	c, err := u.current().Child(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q not visible in %s", ErrBadChildLookup, name, u.name)
	}
	return c, nil
}

func (u *Union) String() string {
	return fmt.Sprintf("<Union[%s](%s)>", u.Selected(), u.name)
}
