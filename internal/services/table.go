package services

// ColumnType hints how the presentation layer renders a column.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnCurrency ColumnType = "currency"
	ColumnDate     ColumnType = "date"
	ColumnStatus   ColumnType = "status"
)

// Column describes one table column of the canonical record projection.
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Type  ColumnType `json:"type"`
}

// TableColumns is the ordered projection driving the dashboard table. Every
// canonical record field is reachable; unknown spreadsheet columns are
// appended by the presentation layer from each record's Extra map.
func TableColumns() []Column {
	return []Column{
		{Key: "client", Label: "Cliente", Type: ColumnText},
		{Key: "service", Label: "Assunto", Type: ColumnText},
		{Key: "amount", Label: "Valor", Type: ColumnCurrency},
		{Key: "status", Label: "Status", Type: ColumnStatus},
		{Key: "paymentDate", Label: "Data de Pagamento", Type: ColumnDate},
		{Key: "referenceDate", Label: "Data de Emissão", Type: ColumnDate},
	}
}
