package otbridge

import "strings"

const unsetValue = "<unset>"

// InvalidConfigError is returned when a required key is missing or its value
// is malformed. Its message has the form
//
//	<key>=<FORMAT> is invalid: <value>
//
// followed by the cause, if any.
type InvalidConfigError struct {
	Key string
	// Format describes the expected value, for instance, "HOST:PORT".
	Format string
	// Value is the raw value. It is meaningful only if Set is true.
	Value string
	Set   bool
	Err   error
}

func (e *InvalidConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Key)
	sb.WriteString("=<")
	sb.WriteString(e.Format)
	sb.WriteString("> is invalid: ")
	if e.Set {
		sb.WriteString(e.Value)
	} else {
		sb.WriteString(unsetValue)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// UnsupportedModeError is returned when the exporter key names an unknown
// exporter.
type UnsupportedModeError struct {
	Key  string
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return "unsupported " + e.Key + "=" + e.Mode
}
