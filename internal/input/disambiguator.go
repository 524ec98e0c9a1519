package input

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/internal/shortcut"
	"github.com/oakwood-commons/figpie/pkg/cell"
)

// Effect names what a tick did.
type Effect string

const (
	EffectNone     Effect = "none"
	EffectPending  Effect = "pending"
	EffectCleared  Effect = "cleared"
	EffectAction   Effect = "action"
	EffectNavigate Effect = "navigate"
	EffectChoose   Effect = "choose"
	EffectAssign   Effect = "assign"
	EffectBack     Effect = "back"
)

// Result describes the outcome of one Handle call. Err carries a
// recoverable tree or navigation error; it is also reflected in Status.
type Result struct {
	Effect Effect
	Key    string
	Err    error
}

// ActionSource is the view of the action registry the disambiguator needs.
type ActionSource interface {
	ActiveKeys() []string
	Lookup(key string) (*cell.Action, bool)
}

// Option configures a Disambiguator.
type Option func(*Disambiguator)

// WithLogger sets the logger used for resolution traces.
func WithLogger(log logr.Logger) Option {
	return func(d *Disambiguator) { d.log = log }
}

// Disambiguator accumulates typed characters until they select exactly one
// candidate key. Candidates are the active action keys plus the shortcuts
// of the current node's options. Registered but inactive actions are not
// candidates.
type Disambiguator struct {
	state   *navigator.State
	actions ActionSource
	log     logr.Logger

	buf    []rune
	status string
	// erase is armed by BACKSPACE on an empty edit buffer; the next ENTER
	// assigns the empty string.
	erase bool
}

// New creates a disambiguator over state. actions may be nil.
func New(state *navigator.State, actions ActionSource, opts ...Option) *Disambiguator {
	d := &Disambiguator{state: state, actions: actions, log: logr.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Buffer returns the typed text not yet resolved.
func (d *Disambiguator) Buffer() string { return string(d.buf) }

// Status returns the last status message.
func (d *Disambiguator) Status() string { return d.status }

// SetStatus replaces the status message, for actions that report results.
func (d *Disambiguator) SetStatus(s string) { d.status = s }

// Handle processes one tick's event.
func (d *Disambiguator) Handle(ev Event) Result {
	mode := d.state.Mode()
	d.log.V(2).Info("tick", "event", ev.String(), "mode", string(mode), "buffer", d.Buffer())

	switch ev.Special {
	case None:
		if d.status != "" && len(d.buf) == 0 {
			d.status = ""
		}
		d.buf = append(d.buf, ev.Char)
		d.erase = false
		if mode == navigator.ModeProperty {
			return Result{Effect: EffectPending}
		}
		return d.match()
	case Backspace:
		if len(d.buf) > 0 {
			d.buf = d.buf[:len(d.buf)-1]
			return Result{Effect: EffectPending}
		}
		if mode == navigator.ModeProperty {
			d.erase = true
			d.status = fmt.Sprintf("enter clears %s", d.state.Current().Name())
		}
		return Result{Effect: EffectPending}
	case Escape:
		d.status = ""
		res := Result{Effect: EffectCleared}
		if mode != navigator.ModeContainer {
			res = d.back()
		}
		d.clear()
		return res
	case Enter:
		return d.enter(mode)
	case Timeout:
		if len(d.buf) == 0 || mode == navigator.ModeProperty {
			return Result{Effect: EffectNone}
		}
		if _, ok := d.candidates()[d.Buffer()]; ok {
			return d.resolve(d.Buffer())
		}
		return d.match()
	}
	return Result{Effect: EffectNone}
}

func (d *Disambiguator) enter(mode navigator.Mode) Result {
	switch mode {
	case navigator.ModeProperty:
		res := d.assign()
		if back := d.back(); back.Err != nil && res.Err == nil {
			res.Err = back.Err
		}
		d.clear()
		return res
	case navigator.ModeAction:
		act, _ := d.state.Current().(*cell.Action)
		res := Result{Effect: EffectAction}
		if err := act.CallStrict(); err != nil {
			res.Err = d.fail(err)
		}
		d.back()
		d.clear()
		return res
	default:
		if _, ok := d.candidates()[d.Buffer()]; ok && len(d.buf) > 0 {
			return d.resolve(d.Buffer())
		}
		d.clear()
		return Result{Effect: EffectCleared}
	}
}

// assign writes the buffer to the current scalar. An empty buffer keeps
// the value unless erase is armed, in which case "" is assigned.
func (d *Disambiguator) assign() Result {
	cur := d.state.Current()
	res := Result{Effect: EffectAssign}
	if len(d.buf) == 0 && !d.erase {
		d.status = fmt.Sprintf("%s unchanged", cur.Name())
		return res
	}
	s, ok := cur.(cell.Scalar)
	if !ok {
		res.Err = d.fail(fmt.Errorf("%s(%s): %w", cur.Kind(), cur.Name(), cell.ErrNotWriteable))
		return res
	}
	if err := s.Set(d.Buffer()); err != nil {
		res.Err = d.fail(err)
		return res
	}
	if len(d.buf) == 0 {
		d.status = fmt.Sprintf("%s cleared", cur.Name())
	} else {
		d.status = fmt.Sprintf("%s = %s", cur.Name(), d.Buffer())
	}
	d.log.V(1).Info("assigned", "path", d.state.Path(), "value", d.Buffer())
	return res
}

func (d *Disambiguator) back() Result {
	if err := d.state.GoPrevious(); err != nil {
		if errors.Is(err, navigator.ErrAtRoot) {
			return Result{Effect: EffectNone}
		}
		return Result{Effect: EffectBack, Err: d.fail(err)}
	}
	return Result{Effect: EffectBack}
}

type target struct {
	action *cell.Action
	option cell.Cell
}

// candidates maps every selectable key to what it resolves to, with action
// keys first. Option shortcuts never collide with reserved keys.
func (d *Disambiguator) candidates() map[string]target {
	out := map[string]target{}
	if d.actions != nil {
		for _, k := range d.actions.ActiveKeys() {
			if a, ok := d.actions.Lookup(k); ok {
				out[k] = target{action: a}
			}
		}
	}
	opts, err := d.state.Options()
	if err != nil {
		return out
	}
	for _, o := range opts {
		if _, taken := out[o.Key]; !taken {
			out[o.Key] = target{option: o.Cell}
		}
	}
	return out
}

func (d *Disambiguator) candidateKeys() []string {
	var keys []string
	if d.actions != nil {
		keys = append(keys, d.actions.ActiveKeys()...)
	}
	if opts, err := d.state.Options(); err == nil {
		for _, o := range opts {
			keys = append(keys, o.Key)
		}
	}
	return keys
}

// match applies the prefix rule to the buffer.
func (d *Disambiguator) match() Result {
	matches := shortcut.Match(d.candidateKeys(), d.Buffer())
	switch len(matches) {
	case 0:
		d.status = fmt.Sprintf("no match for %q", d.Buffer())
		d.log.V(1).Info("no match", "buffer", d.Buffer())
		d.clear()
		return Result{Effect: EffectCleared}
	case 1:
		return d.resolve(matches[0])
	default:
		return Result{Effect: EffectPending}
	}
}

// resolve performs exactly one effect for key and clears the buffer last.
func (d *Disambiguator) resolve(key string) Result {
	t, ok := d.candidates()[key]
	res := Result{Key: key}
	d.status = ""
	switch {
	case !ok:
		res.Effect = EffectCleared
	case t.action != nil:
		res.Effect = EffectAction
		d.log.V(1).Info("action", "key", key, "name", t.action.Name())
		t.action.Call()
	case d.state.Mode() == navigator.ModeEnum:
		res.Effect = EffectChoose
		if err := d.state.Choose(t.option.Name()); err != nil {
			res.Err = d.fail(err)
		}
	default:
		res.Effect = EffectNavigate
		if err := d.state.GoNext(t.option.Name()); err != nil {
			res.Err = d.fail(err)
		}
	}
	d.clear()
	return res
}

func (d *Disambiguator) fail(err error) error {
	d.status = err.Error()
	d.log.V(1).Info("recoverable error", "error", err.Error())
	return err
}

func (d *Disambiguator) clear() {
	d.buf = d.buf[:0]
	d.erase = false
}
