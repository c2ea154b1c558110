// Package form holds the contact form: four text controls with required and
// minimum-length rules, submission to a log sink, and reset.
package form

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys in declaration order.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldCountry   = "country"
	FieldNote      = "note"
)

// NoticeInvalid is logged instead of the record when a submission fails validation.
const NoticeInvalid = "Form is invalid"

// msgSubmitted is the log message carrying a valid record.
const msgSubmitted = "form submitted"

// ErrUnknownField is returned when a field key does not name a control.
var ErrUnknownField = errors.New("form: unknown field")

// Record is the plain value of the form.
type Record struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Country   string `json:"country" yaml:"country"`
	Note      string `json:"note" yaml:"note"`
}

// MarshalLogObject encodes the record with its field keys.
func (r Record) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString(FieldFirstName, r.FirstName)
	enc.AddString(FieldLastName, r.LastName)
	enc.AddString(FieldCountry, r.Country)
	enc.AddString(FieldNote, r.Note)
	return nil
}

// Submission is the outcome of Submit. Record is zero when Valid is false.
type Submission struct {
	ID            string
	Valid         bool
	Record        Record
	InvalidFields []string
}

// Group is the form. It is owned by a single view and is not safe for
// concurrent use.
type Group struct {
	controls []*Control
	byName   map[string]*Control
	logger   *zap.Logger
	newID    func() string
}

// Option configures a Group.
type Option func(*Group)

// WithLogger sets the sink for submissions. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(g *Group) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithIDFunc overrides submission ID generation.
func WithIDFunc(fn func() string) Option {
	return func(g *Group) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// New creates the form with all four fields empty, and therefore invalid.
func New(opts ...Option) *Group {
	g := &Group{
		controls: []*Control{
			newControl(FieldFirstName, "First name", Required(), MinLength(2)),
			newControl(FieldLastName, "Last name", Required(), MinLength(2)),
			newControl(FieldCountry, "Country", Required(), MinLength(5)),
			newControl(FieldNote, "Note", Required(), MinLength(10)),
		},
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}
	g.byName = make(map[string]*Control, len(g.controls))
	for _, c := range g.controls {
		g.byName[c.name] = c
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FirstName returns the firstName control.
func (g *Group) FirstName() *Control { return g.byName[FieldFirstName] }

// LastName returns the lastName control.
func (g *Group) LastName() *Control { return g.byName[FieldLastName] }

// Country returns the country control.
func (g *Group) Country() *Control { return g.byName[FieldCountry] }

// Note returns the note control.
func (g *Group) Note() *Control { return g.byName[FieldNote] }

// Get returns the control for name, or nil.
func (g *Group) Get(name string) *Control { return g.byName[name] }

// Controls returns the controls in declaration order.
func (g *Group) Controls() []*Control {
	out := make([]*Control, len(g.controls))
	copy(out, g.controls)
	return out
}

// SetValue applies user input to a field.
func (g *Group) SetValue(name, value string) error {
	c, ok := g.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.setValue(value)
	return nil
}

// Patch applies every field of r as user input.
func (g *Group) Patch(r Record) {
	g.FirstName().setValue(r.FirstName)
	g.LastName().setValue(r.LastName)
	g.Country().setValue(r.Country)
	g.Note().setValue(r.Note)
}

// MarkTouched flags a field as visited.
func (g *Group) MarkTouched(name string) error {
	c, ok := g.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.touched = true
	return nil
}

// MarkAllTouched flags every field as visited.
func (g *Group) MarkAllTouched() {
	for _, c := range g.controls {
		c.touched = true
	}
}

// Valid reports whether every control is valid.
func (g *Group) Valid() bool {
	for _, c := range g.controls {
		if c.Invalid() {
			return false
		}
	}
	return true
}

// Dirty reports whether any control is dirty.
func (g *Group) Dirty() bool {
	for _, c := range g.controls {
		if c.dirty {
			return true
		}
	}
	return false
}

// Value returns the current values regardless of validity.
func (g *Group) Value() Record {
	return Record{
		FirstName: g.FirstName().value,
		LastName:  g.LastName().value,
		Country:   g.Country().value,
		Note:      g.Note().value,
	}
}

// InvalidFields returns the keys of invalid controls in declaration order.
func (g *Group) InvalidFields() []string {
	var names []string
	for _, c := range g.controls {
		if c.Invalid() {
			names = append(names, c.name)
		}
	}
	return names
}

// Submit logs the record when the form is valid, or NoticeInvalid otherwise.
// Every control is marked touched so views reveal remaining errors.
func (g *Group) Submit() Submission {
	g.MarkAllTouched()
	sub := Submission{ID: g.newID()}

	if !g.Valid() {
		sub.InvalidFields = g.InvalidFields()
		g.logger.Warn(NoticeInvalid,
			zap.String("submission_id", sub.ID),
			zap.Strings("invalid_fields", sub.InvalidFields),
		)
		return sub
	}

	sub.Valid = true
	sub.Record = g.Value()
	g.logger.Warn(msgSubmitted,
		zap.String("submission_id", sub.ID),
		zap.Object("value", sub.Record),
	)
	return sub
}

// Reset clears every value and the touched and dirty flags.
func (g *Group) Reset() {
	for _, c := range g.controls {
		c.reset()
	}
	g.logger.Debug("form reset")
}
