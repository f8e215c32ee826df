package cliconfig

// OptionalString is a flag value that may be given bare or with a value, as
// with `--skip` and `--skip "Broken on Windows"`. A bare flag is Set with
// "true".
type OptionalString struct {
	Value string
}

// IsBoolFlag tells flag parsers that the flag can be passed without a value.
// See https://pkg.go.dev/flag#Value
func (o *OptionalString) IsBoolFlag() bool {
	return true
}

func (o *OptionalString) Set(v string) error {
	o.Value = v
	return nil
}

func (o *OptionalString) String() string {
	if o == nil {
		return ""
	}
	return o.Value
}
