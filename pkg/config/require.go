package config

import (
	"log"
	"sort"
)

// Missing returns the names of required env vars whose values are empty, sorted.
func Missing(required map[string]string) []string {
	var out []string
	for name, value := range required {
		if value == "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func MustNonEmpty(required map[string]string) {
	if missing := Missing(required); len(missing) > 0 {
		log.Fatalf("missing required env %v", missing)
	}
}
