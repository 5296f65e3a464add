package sshrunner

import "strings"

// Safe characters never need quoting on a POSIX shell command line.
const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%_-+=:,./"

// Quote wraps a string in single quotes for a POSIX shell unless every
// character is known safe. Embedded single quotes are escaped by closing
// the quote, emitting \', and reopening.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !strings.ContainsRune(safeChars, r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
