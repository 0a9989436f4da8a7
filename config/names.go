package config

import (
	"os"
	"strings"
)

// CleanFileName removes characters not allowed in file names on this platform.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(reservedFileNameChars, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// https://no-color.org
func colorDisabled() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}
