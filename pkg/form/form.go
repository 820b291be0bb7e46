package form

import (
	"github.com/go-drift/fieldkit/pkg/core"
)

// Form groups form fields and provides coordinated validation, save, and
// reset operations.
//
// Form is the configuration; call [Form.CreateState] to obtain the
// [FormState] fields register with.
//
// Autovalidate behavior:
//   - When Autovalidate is true, individual fields validate themselves when their
//     value changes (after user interaction).
//   - This does NOT validate untouched fields, avoiding premature error display.
//   - Call Validate() explicitly to validate all fields (e.g., on form submission).
//
// Example:
//
//	state := form.Form{Autovalidate: true}.CreateState()
//	tags := form.FormField[core.List[string]]{
//	    Validator: func(v core.List[string], ok bool) string {
//	        if core.IsEmpty(v, ok) {
//	            return "Pick at least one tag"
//	        }
//	        return ""
//	    },
//	}.CreateState(state)
//	defer tags.Dispose()
//
//	if state.Validate() {
//	    state.Save()
//	}
type Form struct {
	// Autovalidate runs a field's validator when that field changes.
	Autovalidate bool
	// OnChanged is called when any field changes.
	OnChanged func()
}

// CreateState returns the runtime state for f.
func (f Form) CreateState() *FormState {
	return &FormState{
		autovalidate: f.Autovalidate,
		onChanged:    f.OnChanged,
	}
}

// FormState manages the fields registered with a [Form].
//
// Methods:
//   - Validate() bool: Validates all fields and returns true if all pass.
//   - Save(): Calls OnSaved on all fields (typically after successful validation).
//   - Reset(): Resets all fields to their initial values and clears errors.
//
// FormState tracks a generation counter that increments on validation, reset,
// and field changes, and notifies its listeners each time it does.
//
// FormState is NOT thread-safe. It must only be used from the UI thread.
type FormState struct {
	fields       []formFieldState
	generation   int
	autovalidate bool
	onChanged    func()
	listeners    core.ChangeNotifier
}

type formFieldState interface {
	Validate() bool
	Save()
	Reset()
}

// AddListener registers fn to run whenever the generation changes.
func (s *FormState) AddListener(fn func()) func() {
	return s.listeners.AddListener(fn)
}

// Generation returns the number of validations, resets and field changes seen.
func (s *FormState) Generation() int {
	return s.generation
}

// Autovalidate reports whether fields validate themselves on change.
func (s *FormState) Autovalidate() bool {
	return s.autovalidate
}

// Len returns the number of registered fields.
func (s *FormState) Len() int {
	return len(s.fields)
}

// RegisterField registers a field with this form. Registering the same field
// twice has no effect.
func (s *FormState) RegisterField(field formFieldState) {
	for _, f := range s.fields {
		if f == field {
			return
		}
	}
	s.fields = append(s.fields, field)
}

// UnregisterField unregisters a field from this form.
func (s *FormState) UnregisterField(field formFieldState) {
	for i, f := range s.fields {
		if f == field {
			s.fields = append(s.fields[:i:i], s.fields[i+1:]...)
			return
		}
	}
}

// Validate runs validators on all fields, in registration order.
func (s *FormState) Validate() bool {
	valid := true
	for _, field := range s.snapshot() {
		if !field.Validate() {
			valid = false
		}
	}
	s.bumpGeneration()
	return valid
}

// Save calls OnSaved for all fields.
func (s *FormState) Save() {
	for _, field := range s.snapshot() {
		field.Save()
	}
}

// Reset resets all fields to their initial values.
func (s *FormState) Reset() {
	for _, field := range s.snapshot() {
		field.Reset()
	}
	s.bumpGeneration()
}

// NotifyChanged informs listeners that a field changed.
// When autovalidate is enabled, the calling field is expected to validate itself
// rather than having the form validate all fields (which would show errors on
// untouched fields). Validate can still be called explicitly to validate all.
func (s *FormState) NotifyChanged() {
	if s.onChanged != nil {
		s.onChanged()
	}
	s.bumpGeneration()
}

func (s *FormState) snapshot() []formFieldState {
	fields := make([]formFieldState, len(s.fields))
	copy(fields, s.fields)
	return fields
}

func (s *FormState) bumpGeneration() {
	s.generation++
	s.listeners.NotifyListeners()
}
