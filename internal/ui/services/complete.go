package services

import (
	"strings"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

// Complete completes the last space-separated word of input against entries.
// A single match is completed with a trailing "/" for directories and " " for
// files. Several matches are extended to their longest common prefix. The input
// is returned unchanged when there is nothing to add.
func Complete(input string, entries []models.Entry) string {
	cut := strings.LastIndex(input, " ") + 1
	head, current := input[:cut], input[cut:]
	if current == "" {
		return input
	}

	var matches []models.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Name, current) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return input
	case 1:
		suffix := " "
		if matches[0].IsDir {
			suffix = "/"
		}
		return head + matches[0].Name + suffix
	}

	prefix := commonPrefix(matches)
	if len(prefix) <= len(current) {
		return input
	}
	return head + prefix
}

func commonPrefix(entries []models.Entry) string {
	prefix := entries[0].Name
	for _, e := range entries[1:] {
		n := 0
		for n < len(prefix) && n < len(e.Name) && prefix[n] == e.Name[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
