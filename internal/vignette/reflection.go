package vignette

import "strings"

// PickReflection chooses one of the record's non-blank reflection prompts
// uniformly at random. ok is false when the record has none, in which case
// rng is not consulted.
func PickReflection(r Record, rng Rand) (text string, ok bool) {
	var options []string
	for _, q := range r.Reflections {
		if strings.TrimSpace(q) != "" {
			options = append(options, q)
		}
	}
	if len(options) == 0 {
		return "", false
	}
	return options[rng.IntN(len(options))], true
}
