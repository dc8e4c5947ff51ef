package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	sqlLineComment   = regexp.MustCompile(`--[^\n]*`)
	sqlStringLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
	sqlWhitespace    = regexp.MustCompile(`\s+`)
)

// formatDBQueryForTrace turns a statement into a single-line span attribute.
// Comments are dropped and quoted literals become '?'; bind parameters are kept.
func formatDBQueryForTrace(query string) string {
	query = sqlStringLiteral.ReplaceAllString(query, "'?'")
	query = sqlLineComment.ReplaceAllString(query, "")
	query = strings.TrimSpace(sqlWhitespace.ReplaceAllString(query, " "))
	if len(query) > maxTracedQueryLength {
		return query[:maxTracedQueryLength] + "..."
	}
	return query
}
