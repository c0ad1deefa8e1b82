package triangle

// Step is one formula application in a solve trace.
type Step struct {
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	Formula string  `json:"formula,omitempty"`
	Detail  string  `json:"detail"`
	Key     Key     `json:"key,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Failed  bool    `json:"failed,omitempty"`
}

// Result is the outcome of [Solve]. It is never mutated after Solve returns.
type Result struct {
	Mode     Mode     `json:"mode"`
	Measures Measures `json:"measures"`
	Valid    bool     `json:"valid"`
	Steps    []Step   `json:"steps"`

	// Err is the coded failure when Valid is false.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Derived returns the measures the mode computed, keyed by name.
// An invalid result has none.
func (r Result) Derived() map[Key]float64 {
	if !r.Valid {
		return nil
	}
	out := make(map[Key]float64, 3)
	for _, k := range r.Mode.Derived() {
		out[k] = r.Measures.Get(k)
	}
	return out
}
