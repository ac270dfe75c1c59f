package core

import (
	"fmt"
	"strings"
)

// AliasTable lists, per canonical field, the header spellings recognized in
// priority order. Matching is accent- and case-insensitive (see
// NormalizeHeader). Payment and reference dates are deliberately distinct
// families; deployments where both concepts live in one column configure the
// same aliases for both.
type AliasTable struct {
	Client        []string
	Service       []string
	Amount        []string
	Status        []string
	PaymentDate   []string
	ReferenceDate []string
}

// DefaultAliasTable matches the invoice spreadsheet headers this dashboard
// was built against (Portuguese, with historical spelling variants).
func DefaultAliasTable() AliasTable {
	return AliasTable{
		Client: []string{"cliente"},
		Service: []string{
			"assunto",
			"descricao",
			"descrição",
			"serviço",
			"servico",
		},
		Amount: []string{"valor"},
		Status: []string{"status", "situacao", "situação"},
		PaymentDate: []string{
			"data de pagamento",
			"data_pagamento",
			"pagamento",
			"data pagamento",
		},
		ReferenceDate: []string{
			"data criacao",
			"data de criacao",
			"data de emissao",
			"data emissao",
			"data de vencimento",
			"vencimento",
			"data",
		},
	}
}

// NormalizeRow converts one raw spreadsheet row into a canonical Record.
// Per-cell coercion failures degrade silently (empty text, zero amount, no
// date); nothing at this layer raises an error or halts the pipeline.
func NormalizeRow(row RawRow, aliases AliasTable) Record {
	idx := IndexHeaders(row)

	rec := Record{
		Client:        resolveText(idx, row, aliases.Client),
		Service:       resolveText(idx, row, aliases.Service),
		Status:        resolveText(idx, row, aliases.Status),
		PaymentDate:   resolveDate(idx, row, aliases.PaymentDate),
		ReferenceDate: resolveDate(idx, row, aliases.ReferenceDate),
	}
	amountRaw, _ := idx.Resolve(row, aliases.Amount)
	rec.Amount = CoerceAmount(amountRaw)

	claimed := claimedHeaders(idx, aliases)
	for header, value := range row {
		if claimed[NormalizeHeader(header)] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[strings.TrimSpace(header)] = value
	}
	return rec
}

// NormalizeGrid converts a fetched values grid (row 0 = headers) into the
// canonical record collection, preserving row order. Rows with no non-empty
// cell are dropped.
func NormalizeGrid(grid [][]any, aliases AliasTable) []Record {
	if len(grid) < 2 {
		return nil
	}
	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(h))
	}

	records := make([]Record, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(RawRow, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" || i >= len(cells) {
				continue
			}
			row[header] = cells[i]
			switch c := cells[i].(type) {
			case nil:
			case string:
				if strings.TrimSpace(c) != "" {
					empty = false
				}
			default:
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, NormalizeRow(row, aliases))
	}
	return records
}

func resolveText(idx HeaderIndex, row RawRow, aliases []string) string {
	v, ok := idx.Resolve(row, aliases)
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func resolveDate(idx HeaderIndex, row RawRow, aliases []string) Date {
	v, ok := idx.Resolve(row, aliases)
	if !ok {
		return Date{}
	}
	return CoerceDate(v)
}

func claimedHeaders(idx HeaderIndex, aliases AliasTable) map[string]bool {
	claimed := make(map[string]bool)
	for _, family := range [][]string{
		aliases.Client,
		aliases.Service,
		aliases.Amount,
		aliases.Status,
		aliases.PaymentDate,
		aliases.ReferenceDate,
	} {
		for _, alias := range family {
			key := NormalizeHeader(alias)
			if _, ok := idx[key]; ok {
				claimed[key] = true
			}
		}
	}
	return claimed
}
