package solutions

import "strconv"

func init() {
	Register("codeforces", "Abbreviate", Abbreviate)
}

// Abbreviate solves Codeforces 71A: words longer than ten characters become
// their first letter, the count of letters in between, and their last letter.
func Abbreviate(word string) string {
	if len(word) <= 10 {
		return word
	}
	return word[:1] + strconv.Itoa(len(word)-2) + word[len(word)-1:]
}
