package inventory

import (
	"strings"
)

const headerToken = "NAME"

// minRowTokens is the smallest row we accept: name, two size tokens
// and at least one modified token.
const minRowTokens = 4

// ParseTable parses the tabular output of `ollama list` into records.
//
// The expected shape is an optional header line containing NAME,
// followed by whitespace-separated rows of:
//
//	<name:tag> <size-value> <size-unit> <modified...>
//
// Rows with fewer than four tokens are dropped silently.
func ParseTable(output []byte) []ModelRecord {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return nil
	}

	start := 0
	if strings.Contains(lines[0], headerToken) {
		start = 1
	}

	var records []ModelRecord
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < minRowTokens {
			continue
		}

		fullName := parts[0]
		name, _, _ := strings.Cut(fullName, ":")

		records = append(records, ModelRecord{
			Name:     name,
			FullName: fullName,
			Size:     parts[1] + " " + parts[2],
			Modified: strings.Join(parts[3:], " "),
		})
	}

	return records
}
