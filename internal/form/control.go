package form

// Control is one named, independently validated field of a Group.
// Its state is only changed through the owning Group.
type Control struct {
	name    string
	label   string
	value   string
	rules   []Rule
	touched bool
	dirty   bool
}

func newControl(name, label string, rules ...Rule) *Control {
	return &Control{name: name, label: label, rules: rules}
}

// Name returns the field key, e.g. "firstName".
func (c *Control) Name() string { return c.name }

// Label returns the display label, e.g. "First name".
func (c *Control) Label() string { return c.label }

// Value returns the current value.
func (c *Control) Value() string { return c.value }

// Errors returns the failed rules in declaration order, or nil when valid.
func (c *Control) Errors() []ValidationError {
	return c.Check(c.value)
}

// Check evaluates the control's rules against value without changing state.
func (c *Control) Check(value string) []ValidationError {
	var errs []ValidationError
	for _, r := range c.rules {
		if ve := r.Check(value); ve != nil {
			errs = append(errs, *ve)
		}
	}
	return errs
}

// HasError reports whether the rule with the given key currently fails.
func (c *Control) HasError(key string) bool {
	for _, e := range c.Errors() {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Valid reports whether every rule passes.
func (c *Control) Valid() bool { return len(c.Errors()) == 0 }

// Invalid is the negation of Valid.
func (c *Control) Invalid() bool { return !c.Valid() }

// Touched reports whether the field has been visited and left.
func (c *Control) Touched() bool { return c.touched }

// Untouched is the negation of Touched.
func (c *Control) Untouched() bool { return !c.touched }

// Dirty reports whether the value has been changed by input since creation or reset.
func (c *Control) Dirty() bool { return c.dirty }

// Pristine is the negation of Dirty.
func (c *Control) Pristine() bool { return !c.dirty }

// ShowErrors reports whether a view should display this control's errors:
// the control is invalid and the user has interacted with it.
func (c *Control) ShowErrors() bool {
	return c.Invalid() && (c.touched || c.dirty)
}

func (c *Control) setValue(v string) {
	if v != c.value {
		c.dirty = true
	}
	c.value = v
}

func (c *Control) reset() {
	c.value = ""
	c.touched = false
	c.dirty = false
}
