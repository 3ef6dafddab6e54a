package zhextract

import (
	"fmt"
	"strings"
)

// FormatEntries formats entries for display.
// The header is the title if available, then the href, then the key.
// Entries are separated by blank lines.
func FormatEntries(entries []*Entry) string {
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		b.WriteString("## ")
		b.WriteString(entryHeader(e))
		b.WriteString("\n")
		if name := e.Fields.Get(FieldAuthorName); name != "" {
			fmt.Fprintf(&b, "by %s", name)
			if agree, ok := e.Fields.String(FieldAgree); ok {
				fmt.Fprintf(&b, " (%s agree)", agree)
			}
			b.WriteString("\n")
		}
		body := e.Fields.Get(FieldContent)
		if body == "" {
			body = e.Fields.Get(FieldDescription)
		}
		b.WriteString(body)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

func entryHeader(e *Entry) string {
	if title := e.Fields.Get(FieldTitle); title != "" {
		return title
	}
	if href := e.Fields.Get(FieldHref); href != "" {
		return href
	}
	if e.Key != "" {
		return string(e.Kind) + " " + e.Key
	}
	return string(e.Kind)
}
