package breaks

import "strings"

// SplitPreferences turns a comma separated string into clean tags.
func SplitPreferences(raw string) []string {
	return CleanPreferences(strings.Split(raw, ","))
}

// CleanPreferences trims each tag and drops empty ones, keeping order.
func CleanPreferences(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
