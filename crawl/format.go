package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatResult summarizes a harvest in one line.
func FormatResult(r *Result) string {
	s := fmt.Sprintf("%d answers, %d questions", r.Answers, r.Questions)
	if r.Extras > 0 {
		s += fmt.Sprintf(", %d page records", r.Extras)
	}
	if r.Duplicates > 0 {
		s += fmt.Sprintf(", %d duplicates skipped", r.Duplicates)
	}
	s += fmt.Sprintf(" from %d pages (%s)", r.Pages, FormatBytes(r.Bytes))
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d failed", r.Failed)
	}
	return s
}
