package validator

// Error is a fatal finding; any Error makes the result invalid.
type Error struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Warning is an advisory finding and never affects validity.
type Warning struct {
	Kind    WarningKind    `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Result struct {
	IsValid  bool      `json:"isValid"`
	Errors   []Error   `json:"errors"`
	Warnings []Warning `json:"warnings"`
}

// Has reports whether a warning of kind k is present.
func (r Result) Has(k WarningKind) bool {
	_, ok := r.Warning(k)
	return ok
}

// Warning returns the first warning of kind k.
func (r Result) Warning(k WarningKind) (Warning, bool) {
	for _, w := range r.Warnings {
		if w.Kind == k {
			return w, true
		}
	}
	return Warning{}, false
}

// ErrorMessages returns the message of every error, in order.
func (r Result) ErrorMessages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}
