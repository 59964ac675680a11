package solutions

func init() {
	Register("arrays", "IsUnique", IsUnique)
}

// IsUnique reports whether no byte occurs twice in s.
func IsUnique(s string) bool {
	var seen [256]bool
	for i := 0; i < len(s); i++ {
		if seen[s[i]] {
			return false
		}
		seen[s[i]] = true
	}
	return true
}
