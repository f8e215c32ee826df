// Package ptr has helpers for optional values, which the step inputs model
// as pointers.
package ptr

// To returns a pointer to a variable containing the value.
func To[T any](t T) *T { return &t }
