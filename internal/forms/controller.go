package forms

// Mode tells the controller whether it is creating a new entity or editing
// a persisted one. Edit mode activates field locks and changes both the
// required set and the payload shape.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ShapeFunc turns a validated form into the outbound API payload. It may
// report additional field errors for cross-field rules (the appointment
// physician-vs-specialty rule); person entities always shape cleanly.
type ShapeFunc func(mode Mode, id int64, fs FormState) (any, Errors)

// Config describes one entity type's form behavior.
type Config struct {
	// Fields is the full field set, in display order. It seeds the empty
	// template.
	Fields []string
	// Required applies in create mode.
	Required []string
	// RequiredOnEdit applies in edit mode; locked fields are excluded since
	// the user cannot change them.
	RequiredOnEdit []string
	// LockedOnEdit fields are read-only once the entity is persisted and
	// never appear in update payloads.
	LockedOnEdit []string
	Shape        ShapeFunc
}

// Controller owns form state for one screen instance. It is created on
// screen entry and discarded on submit or cancel.
type Controller struct {
	cfg    Config
	mode   Mode
	id     int64
	state  FormState
	errors Errors
}

// NewController seeds a controller. A non-zero id means edit mode; initial
// holds the flattened entity (nil for the empty template).
func NewController(cfg Config, id int64, initial FormState) *Controller {
	state := FormState{}
	for _, f := range cfg.Fields {
		state[f] = ""
	}
	for k, v := range initial {
		state[k] = v
	}
	mode := ModeCreate
	if id != 0 {
		mode = ModeEdit
	}
	return &Controller{cfg: cfg, mode: mode, id: id, state: state, errors: Errors{}}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) ID() int64 { return c.id }

// Locked reports whether a field is read-only in the current mode.
func (c *Controller) Locked(name string) bool {
	if c.mode != ModeEdit {
		return false
	}
	for _, f := range c.cfg.LockedOnEdit {
		if f == name {
			return true
		}
	}
	return false
}

// SetField updates one field. Locked fields are ignored. A validation
// error on the changed field is cleared; other errors stay untouched.
func (c *Controller) SetField(name, value string) {
	if c.Locked(name) {
		return
	}
	c.state[name] = value
	delete(c.errors, name)
}

// Field returns the current value of one field.
func (c *Controller) Field(name string) string { return c.state[name] }

// State returns a copy of the full form state.
func (c *Controller) State() FormState { return c.state.Clone() }

// Errors returns a copy of the current validation errors.
func (c *Controller) Errors() Errors {
	out := Errors{}
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Submit validates the form and shapes the outbound payload. On failure it
// records the errors and returns them; the caller surfaces one aggregate
// notice, not per-field toasts.
func (c *Controller) Submit() (any, Errors) {
	required := c.cfg.Required
	if c.mode == ModeEdit {
		required = c.cfg.RequiredOnEdit
	}
	errs := Validate(c.state, required)
	if len(errs) > 0 {
		c.errors = errs
		return nil, c.Errors()
	}

	payload, shapeErrs := c.cfg.Shape(c.mode, c.id, c.state.Clone())
	if len(shapeErrs) > 0 {
		c.errors = shapeErrs
		return nil, c.Errors()
	}
	c.errors = Errors{}
	return payload, nil
}
