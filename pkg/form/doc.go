// Package form adds validation, save and reset to picker fields and
// coordinates them across a form.
package form
