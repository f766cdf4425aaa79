package logger

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ErrorEntry is one level of an error chain as shown to the user.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens an error chain into display entries. zerr errors
// contribute their own message and metadata; joined errors are expanded in order;
// any other error ends the chain with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			switch ze := current.(type) {
			case *zerr.Error:
				meta := ze.Metadata()
				if ze.Message() == "" {
					// Metadata-only wrapper; attach to the next entry.
					pending = mergeMeta(pending, meta)
				} else {
					entries = append(entries, ErrorEntry{
						Message:  ze.Message(),
						Metadata: nilIfEmpty(mergeMeta(pending, meta)),
					})
					pending = nil
				}
				current = ze.Unwrap()
			default:
				if joined, ok := current.(interface{ Unwrap() []error }); ok {
					for _, e := range joined.Unwrap() {
						walk(e)
					}
					return
				}
				entries = append(entries, ErrorEntry{
					Message:  current.Error(),
					Metadata: nilIfEmpty(pending),
				})
				pending = nil
				return
			}
		}
	}
	walk(err)

	if len(pending) > 0 && len(entries) > 0 {
		last := &entries[len(entries)-1]
		last.Metadata = mergeMeta(last.Metadata, pending)
	}
	return entries
}

// formatErrorEntries renders entries as an "Error:" line followed by a "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, cont string
		if i == 0 {
			head, cont = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, cont = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, l := range msgLines[1:] {
			lines = append(lines, cont+l)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", cont, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}

func mergeMeta(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func nilIfEmpty(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}
