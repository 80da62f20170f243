package persistence

import "strings"

// escapeLikePattern escapes LIKE wildcards in user-supplied fragments so a
// product name such as "100% Suco" matches literally.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// containsPattern builds a substring LIKE pattern from a raw fragment
func containsPattern(s string) string {
	return "%" + escapeLikePattern(s) + "%"
}
