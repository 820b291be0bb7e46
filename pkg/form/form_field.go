package form

import (
	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/decoration"
	fielderrors "github.com/go-drift/fieldkit/pkg/errors"
	"github.com/go-drift/fieldkit/pkg/field"
)

// FormField wraps a picker field with validation, save and reset, and
// integrates it with a [FormState].
//
// The validator's message is shown as the decoration's error text, so a
// failing field reserves error space below its frame instead of helper space.
//
// Example (required color):
//
//	color := form.FormField[string]{
//	    Field: field.Config[string]{
//	        Decoration: decoration.InputDecoration{LabelText: "Color"},
//	        OnTap:      pickColor,
//	    },
//	    Validator: func(v string, ok bool) string {
//	        if !ok {
//	            return "Choose a color"
//	        }
//	        return ""
//	    },
//	    OnSaved: func(v string, ok bool) { settings.Color = v },
//	}.CreateState(formState)
type FormField[T any] struct {
	// Field configures the wrapped picker field. Field.OnChanged still runs.
	Field field.Config[T]
	// InitialValue is the field's starting value and the value Reset restores.
	// It overrides Field.InitialValue.
	InitialValue    T
	HasInitialValue bool
	// OnSaved is called when the form is saved.
	OnSaved func(value T, ok bool)
	// Validator returns an error message or empty string.
	Validator func(value T, ok bool) string
	// Disabled excludes the field from validation and save and ignores taps.
	Disabled bool
	// Autovalidate enables validation when the value changes.
	Autovalidate bool
}

// FormFieldState stores the mutable state for a [FormField].
//
// Methods:
//   - Value() (T, bool): Returns the current field value.
//   - ErrorText() string: Returns the current validation error message, or empty string.
//   - HasError() bool: Returns true if there is a validation error.
//   - Validate() bool: Runs the validator and returns true if valid.
//   - Save(): Calls the OnSaved callback with the current value.
//   - Reset(): Resets to InitialValue and clears errors.
type FormFieldState[T any] struct {
	widget        FormField[T]
	ctrl          *field.Controller[T]
	form          *FormState
	base          decoration.InputDecoration
	errorText     string
	hasInteracted bool
	resetting     bool
	initial       T
	initialOK     bool
}

// CreateState builds the field controller and registers it with form, which
// may be nil for a standalone field.
func (f FormField[T]) CreateState(form *FormState) *FormFieldState[T] {
	s := &FormFieldState[T]{
		widget: f,
		form:   form,
		base:   f.Field.Decoration,
	}

	cfg := f.Field
	if f.HasInitialValue {
		cfg.InitialValue, cfg.HasInitialValue = f.InitialValue, true
		if cfg.Value != nil {
			if err := cfg.Value.Set(f.InitialValue); err != nil {
				fielderrors.Report(&fielderrors.FieldError{
					Op:    "form.FormField.CreateState",
					Kind:  fielderrors.KindDispose,
					Field: f.Field.Decoration.LabelText,
					Err:   err,
				})
			}
		}
	}
	if f.Disabled {
		cfg.Disabled = true
	}
	onChanged := cfg.OnChanged
	cfg.OnChanged = func(v T, ok bool) {
		if onChanged != nil {
			onChanged(v, ok)
		}
		if !s.resetting {
			s.didChange()
		}
	}
	s.ctrl = field.New(cfg)
	s.initial, s.initialOK = s.ctrl.ValueController().Value()

	if form != nil {
		form.RegisterField(s)
	}
	return s
}

// Controller returns the wrapped field controller.
func (s *FormFieldState[T]) Controller() *field.Controller[T] {
	return s.ctrl
}

// Value returns the current value.
func (s *FormFieldState[T]) Value() (T, bool) {
	return s.ctrl.ValueController().Value()
}

// ErrorText returns the current error message.
func (s *FormFieldState[T]) ErrorText() string {
	return s.errorText
}

// HasError reports whether the field has an error.
func (s *FormFieldState[T]) HasError() bool {
	return s.errorText != ""
}

// HasInteracted reports whether the value changed since creation or the last
// reset.
func (s *FormFieldState[T]) HasInteracted() bool {
	return s.hasInteracted
}

// SetDecoration replaces the decoration, keeping the validation error text.
func (s *FormFieldState[T]) SetDecoration(d decoration.InputDecoration) {
	s.base = d
	s.applyError()
}

// Validate runs the field validator.
func (s *FormFieldState[T]) Validate() bool {
	valid := true
	if s.widget.Disabled || s.widget.Validator == nil {
		s.errorText = ""
	} else if message := s.widget.Validator(s.Value()); message != "" {
		s.errorText = message
		valid = false
	} else {
		s.errorText = ""
	}
	s.applyError()
	return valid
}

// Save triggers the OnSaved callback.
func (s *FormFieldState[T]) Save() {
	if s.widget.Disabled || s.widget.OnSaved == nil {
		return
	}
	s.widget.OnSaved(s.Value())
}

// Reset returns the field to its initial value and clears errors.
func (s *FormFieldState[T]) Reset() {
	s.resetting = true
	if s.initialOK {
		_ = s.ctrl.ValueController().Set(s.initial)
	} else {
		_ = s.ctrl.ValueController().Clear()
	}
	s.resetting = false
	s.errorText = ""
	s.hasInteracted = false
	s.applyError()
}

// Dispose unregisters the field from the form and disposes the controller.
func (s *FormFieldState[T]) Dispose() {
	if s.form != nil {
		s.form.UnregisterField(s)
		s.form = nil
	}
	s.ctrl.Dispose()
}

func (s *FormFieldState[T]) didChange() {
	s.hasInteracted = true
	if s.form != nil {
		s.form.NotifyChanged()
	}

	// Form.Autovalidate enables per-field validation on change, not form-wide
	// validation, so untouched fields keep a clean decoration.
	if (s.form != nil && s.form.autovalidate) || s.widget.Autovalidate {
		s.Validate()
	}
}

// applyError shows the validation message, or the decoration's own error
// text when the field is valid.
func (s *FormFieldState[T]) applyError() {
	d := s.base
	if s.errorText != "" {
		d = d.WithErrorText(s.errorText)
	}
	s.ctrl.SetDecoration(d)
}

var _ formFieldState = (*FormFieldState[core.List[string]])(nil)
