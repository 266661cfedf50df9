package types

// Result records the outcome of dispatching one action to one VM.
type Result struct {
	Name string
	Err  error
}

// Failed returns the names that errored, in dispatch order.
func Failed(results []Result) []string {
	var names []string
	for _, r := range results {
		if r.Err != nil {
			names = append(names, r.Name)
		}
	}
	return names
}
