package form_test

import (
	"fmt"

	"github.com/go-drift/fieldkit/pkg/form"
)

// This example shows validating and saving a form with one required field.
func ExampleFormState_Validate() {
	state := form.Form{}.CreateState()
	color := form.FormField[string]{
		Validator: func(v string, ok bool) string {
			if !ok {
				return "Choose a color"
			}
			return ""
		},
		OnSaved: func(v string, ok bool) { fmt.Println("saved", v) },
	}.CreateState(state)
	defer color.Dispose()

	fmt.Println(state.Validate(), color.ErrorText())

	_ = color.Controller().ValueController().Set("teal")
	if state.Validate() {
		state.Save()
	}
	// Output:
	// false Choose a color
	// saved teal
}
