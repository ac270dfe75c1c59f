// Package core implements the row normalization and derivation pipeline:
// header alias resolution, date and amount coercion, filtering, aggregation
// and overdue detection over canonical records.
package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var headerStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader folds a header string to its canonical lookup key:
// diacritics stripped, lowercased, underscores treated as spaces and
// runs of whitespace collapsed. "Data de Pagamento", "DATA DE PAGAMENTO"
// and "data_de_pagamento" all normalize to "data de pagamento".
func NormalizeHeader(s string) string {
	stripped, _, err := transform.String(headerStripper, s)
	if err != nil {
		stripped = s
	}
	stripped = strings.ToLower(stripped)
	stripped = strings.ReplaceAll(stripped, "_", " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// HeaderIndex maps normalized header keys to the original header strings of
// one row. When two headers normalize to the same key the later one wins;
// spreadsheets are not expected to carry duplicate semantic columns.
type HeaderIndex map[string]string

// IndexHeaders builds the lookup index for a raw row.
func IndexHeaders(row RawRow) HeaderIndex {
	idx := make(HeaderIndex, len(row))
	for header := range row {
		idx[NormalizeHeader(header)] = header
	}
	return idx
}

// Resolve returns the cell value for the first alias (in priority order)
// whose normalized form matches a header in the row. The boolean
// distinguishes "no alias matched" from a matched-but-empty cell.
// Matching is exact on the normalized form, never substring or fuzzy.
func (idx HeaderIndex) Resolve(row RawRow, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if original, ok := idx[NormalizeHeader(alias)]; ok {
			return row[original], true
		}
	}
	return nil, false
}
