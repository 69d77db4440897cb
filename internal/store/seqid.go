package store

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID derives the next human-readable identifier for a collection.
// It parses the numeric suffix after the final hyphen of each existing ID,
// ignores malformed or missing suffixes, and returns the prefix with the
// maximum plus one, zero-padded to three digits. An empty collection yields
// {prefix}-001.
func NextID(ids []string, prefix string) string {
	max := 0
	for _, id := range ids {
		idx := strings.LastIndex(id, "-")
		if idx < 0 || idx == len(id)-1 {
			continue
		}
		n, err := strconv.Atoi(id[idx+1:])
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
