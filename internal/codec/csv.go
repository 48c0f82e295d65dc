// Package codec converts between an ordered expense list and the
// expenses.csv wire format:
//
//	ID,Amount,Tags,Date
//	<uuid>,<decimal>,<escaped-tags-blob>,<RFC 3339 timestamp>
//
// Top-level columns carry standard CSV quoting. The Tags column is a
// sub-document: each tag is escaped on its own (quote-wrapped when it
// contains a comma, quote or newline, internal quotes doubled), then
// the escaped tags are joined with ";;". Decoding applies the exact
// inverse. A bare tag that itself contains ";;" cannot be told apart
// from two tags and splits on decode; callers live with that.
package codec

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasca/internal/core"
)

// TagDelimiter separates tags inside the Tags column.
const TagDelimiter = ";;"

var header = []string{"ID", "Amount", "Tags", "Date"}

const dateLayout = time.RFC3339Nano

// Encode renders records as a CSV blob, header line first. Encoding a
// nil or empty list yields exactly the header line.
func Encode(records []core.Expense) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, e := range records {
		_ = w.Write([]string{
			e.ID.String(),
			e.Amount.String(),
			EncodeTags(e.Tags),
			e.Date.Format(dateLayout),
		})
	}
	w.Flush()
	return buf.Bytes()
}

// Decode parses a CSV blob back into an ordered record list. The first
// line (header) and empty lines are discarded. Malformed lines are
// skipped individually and counted, never failing the whole decode: a
// partially corrupt file yields a partial record set.
func Decode(data []byte) (records []core.Expense, skipped int) {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		e, ok := decodeLine(line)
		if !ok {
			skipped++
			slog.Warn("Skipping malformed CSV line", "line", i+1)
			continue
		}
		records = append(records, e)
	}
	return records, skipped
}

func decodeLine(line string) (core.Expense, bool) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil || len(fields) < 4 {
		return core.Expense{}, false
	}
	// Extra columns are tolerated; only the first four are ours.
	id, err := uuid.Parse(strings.TrimSpace(fields[0]))
	if err != nil {
		return core.Expense{}, false
	}
	cents, ok := parseAmountCents(fields[1])
	if !ok {
		return core.Expense{}, false
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(fields[3]))
	if err != nil {
		return core.Expense{}, false
	}
	return core.Expense{
		ID:     id,
		Amount: core.Money{Cents: cents},
		Tags:   DecodeTags(fields[2]),
		Date:   date,
	}, true
}

// parseAmountCents is the permissive load-time parse: any decimal
// number is accepted, sign included. Amounts are only validated at
// creation time, never re-validated on load.
func parseAmountCents(s string) (int64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}

// EncodeTags escapes each tag and joins them with the delimiter.
func EncodeTags(tags []string) string {
	escaped := make([]string, len(tags))
	for i, t := range tags {
		escaped[i] = escapeTag(t)
	}
	return strings.Join(escaped, TagDelimiter)
}

// DecodeTags is the exact inverse of EncodeTags: it splits the blob on
// delimiters outside quotes, unescapes each segment and drops empties.
func DecodeTags(blob string) []string {
	var tags []string
	for _, seg := range splitOutsideQuotes(blob) {
		t := unescapeTag(seg)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

func escapeTag(t string) string {
	if strings.ContainsAny(t, ",\"\n\r") {
		return `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return t
}

func unescapeTag(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}

// splitOutsideQuotes splits on the delimiter, ignoring delimiters that
// appear inside a quoted segment.
func splitOutsideQuotes(s string) []string {
	var (
		parts    []string
		start    int
		inQuotes bool
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"':
			inQuotes = !inQuotes
		case !inQuotes && strings.HasPrefix(s[i:], TagDelimiter):
			parts = append(parts, s[start:i])
			i += len(TagDelimiter) - 1
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
