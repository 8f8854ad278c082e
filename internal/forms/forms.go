// Package forms holds the form-state engine shared by the physician,
// patient and appointment screens: flat field state, required-field
// validation, edit locks and payload shaping.
package forms

// FormState maps field names to raw string input. Address sub-fields live
// here flattened; the nested shape only exists on the wire.
type FormState map[string]string

// Clone returns an independent copy.
func (fs FormState) Clone() FormState {
	out := make(FormState, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Errors maps field names to user-facing messages. An empty map means the
// form is submittable.
type Errors map[string]string
