package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"financas/internal/core"
	"financas/internal/services"
)

type recordDTO struct {
	Client        string         `json:"client"`
	Service       string         `json:"service"`
	Amount        string         `json:"amount"`
	Status        string         `json:"status"`
	PaymentDate   string         `json:"paymentDate,omitempty"`
	ReferenceDate string         `json:"referenceDate,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

type overdueDTO struct {
	recordDTO
	DaysLate int `json:"daysLate"`
}

type clientTotalDTO struct {
	Client string `json:"client"`
	Total  string `json:"total"`
}

type statusTotalDTO struct {
	Status string `json:"status"`
	Total  string `json:"total"`
}

type aggregatesDTO struct {
	Total        string           `json:"total"`
	TotalPaid    string           `json:"totalPaid"`
	TotalPending string           `json:"totalPending"`
	Count        int              `json:"count"`
	ByClient     []clientTotalDTO `json:"byClient"`
	ByStatus     []statusTotalDTO `json:"byStatus"`
}

type optionsDTO struct {
	Clients  []string `json:"clients"`
	Statuses []string `json:"statuses"`
	Years    []int    `json:"years"`
}

type dashboardResponse struct {
	Records      []recordDTO   `json:"records"`
	Aggregates   aggregatesDTO `json:"aggregates"`
	OverdueCount int           `json:"overdueCount"`
	Options      optionsDTO    `json:"options"`
	LoadError    string        `json:"loadError,omitempty"`
	GeneratedAt  time.Time     `json:"generatedAt"`
}

func buildRecordDTO(rec core.Record) recordDTO {
	dto := recordDTO{
		Client:  rec.Client,
		Service: rec.Service,
		Amount:  rec.Amount.String(),
		Status:  rec.Status,
		Extra:   rec.Extra,
	}
	if !rec.PaymentDate.IsEmpty() {
		dto.PaymentDate = rec.PaymentDate.Format("2006-01-02")
	}
	if !rec.ReferenceDate.IsEmpty() {
		dto.ReferenceDate = rec.ReferenceDate.Format("2006-01-02")
	}
	return dto
}

func buildDashboardResponse(view services.View) dashboardResponse {
	records := make([]recordDTO, 0, len(view.Records))
	for _, rec := range view.Records {
		records = append(records, buildRecordDTO(rec))
	}

	byClient := make([]clientTotalDTO, 0, len(view.Aggregates.ByClient))
	for _, ct := range view.Aggregates.ByClient {
		byClient = append(byClient, clientTotalDTO{Client: ct.Client, Total: ct.Amount.String()})
	}
	byStatus := make([]statusTotalDTO, 0, len(view.Aggregates.ByStatus))
	for _, st := range view.Aggregates.ByStatus {
		byStatus = append(byStatus, statusTotalDTO{Status: st.Status, Total: st.Amount.String()})
	}

	return dashboardResponse{
		Records: records,
		Aggregates: aggregatesDTO{
			Total:        view.Aggregates.Total.String(),
			TotalPaid:    view.Aggregates.TotalPaid.String(),
			TotalPending: view.Aggregates.TotalPending.String(),
			Count:        len(view.Records),
			ByClient:     byClient,
			ByStatus:     byStatus,
		},
		OverdueCount: len(view.Overdue),
		Options: optionsDTO{
			Clients:  view.Options.Clients,
			Statuses: view.Options.Statuses,
			Years:    view.Options.Years,
		},
		LoadError:   view.LoadError,
		GeneratedAt: view.GeneratedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
