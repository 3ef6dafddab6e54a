// Package zhextract extracts structured records (answers, questions,
// authors, topics, collections) from the HTML markup of Zhihu pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, slog/).
package zhextract
