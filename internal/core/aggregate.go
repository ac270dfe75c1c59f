package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TopClientGroups caps the by-client breakdown for charting.
const TopClientGroups = 12

// UndefinedStatusLabel groups records whose status cell is blank.
const UndefinedStatusLabel = "Indefinido"

type (
	// ClientTotal is the summed amount for one client.
	ClientTotal struct {
		Client string
		Amount decimal.Decimal
	}

	// StatusTotal is the summed amount for one status label.
	StatusTotal struct {
		Status string
		Amount decimal.Decimal
	}

	// Aggregates are the KPI figures derived from a filtered view.
	Aggregates struct {
		Total        decimal.Decimal
		TotalPaid    decimal.Decimal
		TotalPending decimal.Decimal
		ByClient     []ClientTotal
		ByStatus     []StatusTotal
	}
)

// Aggregate computes all KPI figures in one pass over the filtered view.
// TotalPending is the complement Total-TotalPaid, never an independent sum
// over pending-status records: it absorbs every status other than paid.
func Aggregate(records []Record) Aggregates {
	agg := Aggregates{
		Total:     decimal.Zero,
		TotalPaid: decimal.Zero,
	}

	clientSums := map[string]decimal.Decimal{}
	clientOrder := make([]string, 0)
	statusSums := map[string]decimal.Decimal{}
	statusOrder := make([]string, 0)

	for _, rec := range records {
		agg.Total = agg.Total.Add(rec.Amount)
		if rec.IsPaid() {
			agg.TotalPaid = agg.TotalPaid.Add(rec.Amount)
		}

		if _, seen := clientSums[rec.Client]; !seen {
			clientOrder = append(clientOrder, rec.Client)
		}
		clientSums[rec.Client] = clientSums[rec.Client].Add(rec.Amount)

		status := strings.TrimSpace(rec.Status)
		if status == "" {
			status = UndefinedStatusLabel
		}
		if _, seen := statusSums[status]; !seen {
			statusOrder = append(statusOrder, status)
		}
		statusSums[status] = statusSums[status].Add(rec.Amount)
	}
	agg.TotalPending = agg.Total.Sub(agg.TotalPaid)

	byClient := make([]ClientTotal, 0, len(clientOrder))
	for _, client := range clientOrder {
		byClient = append(byClient, ClientTotal{Client: client, Amount: clientSums[client]})
	}
	// Stable sort keeps encounter order for equal amounts.
	sort.SliceStable(byClient, func(i, j int) bool {
		return byClient[i].Amount.GreaterThan(byClient[j].Amount)
	})
	if len(byClient) > TopClientGroups {
		byClient = byClient[:TopClientGroups]
	}
	agg.ByClient = byClient

	byStatus := make([]StatusTotal, 0, len(statusOrder))
	for _, status := range statusOrder {
		byStatus = append(byStatus, StatusTotal{Status: status, Amount: statusSums[status]})
	}
	agg.ByStatus = byStatus

	return agg
}
