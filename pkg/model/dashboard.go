package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// KeyCount is one bucket of a count-by-key aggregation.
type KeyCount struct {
	Key   string `json:"key" firestore:"key"`
	Count int    `json:"count" firestore:"count"`
}

// Summary holds count/sum/average/min/max over a numeric field.
type Summary struct {
	Count   int     `json:"count" firestore:"count"`
	Sum     float64 `json:"sum" firestore:"sum"`
	Average float64 `json:"average" firestore:"average"`
	Min     float64 `json:"min" firestore:"min"`
	Max     float64 `json:"max" firestore:"max"`
}

// Days is a duration in days that may be unavailable. It renders as the
// N/A placeholder when Valid is false and as a one-decimal number otherwise.
type Days struct {
	Value float64 `firestore:"value"`
	Valid bool    `firestore:"valid"`
}

func (d Days) String() string {
	if !d.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(d.Value, 'f', 1, 64)
}

func (d Days) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return json.Marshal(NotAvailable)
	}
	return []byte(strconv.FormatFloat(math.Round(d.Value*10)/10, 'f', -1, 64)), nil
}

func (d *Days) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		*d = Days{}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*d = Days{}
		return nil
	}
	*d = Days{Value: f, Valid: true}
	return nil
}

// RepairDigest is the short form of a repair shown in dashboard lists.
type RepairDigest struct {
	ID           string `json:"id" firestore:"id"`
	RepairNumber string `json:"repairNumber" firestore:"repairNumber"`
	ClientName   string `json:"clientName" firestore:"clientName"`
	Status       string `json:"status" firestore:"status"`
	StatusLabel  string `json:"statusLabel" firestore:"statusLabel"`
	StatusColor  string `json:"statusColor" firestore:"statusColor"`
	CreatedAt    string `json:"createdAt" firestore:"createdAt"`
	PromiseDate  string `json:"promiseDate" firestore:"promiseDate"`
}

// CustomerInsights summarizes repeat business.
type CustomerInsights struct {
	TotalCustomers  int        `json:"totalCustomers" firestore:"totalCustomers"`
	RepeatCustomers int        `json:"repeatCustomers" firestore:"repeatCustomers"`
	TopCustomers    []KeyCount `json:"topCustomers" firestore:"topCustomers"`
}

// InvoiceSummary totals custom-ticket invoices.
type InvoiceSummary struct {
	Count         int     `json:"count" firestore:"count"`
	TotalInvoiced float64 `json:"totalInvoiced" firestore:"totalInvoiced"`
	TotalPaid     float64 `json:"totalPaid" firestore:"totalPaid"`
	Outstanding   float64 `json:"outstanding" firestore:"outstanding"`
	FullyPaid     int     `json:"fullyPaid" firestore:"fullyPaid"`
}

// DashboardStats is the singleton `system/stats` document that pre-aggregates
// dashboard cards.
type DashboardStats struct {
	LastUpdated           time.Time        `json:"lastUpdated,omitempty" firestore:"lastUpdated,omitempty"`
	TotalRepairs          int              `json:"totalRepairs" firestore:"totalRepairs"`
	CompletedRepairs      int              `json:"completedRepairs" firestore:"completedRepairs"`
	ActiveRepairs         int              `json:"activeRepairs" firestore:"activeRepairs"`
	RushRepairs           int              `json:"rushRepairs" firestore:"rushRepairs"`
	TotalRevenue          int64            `json:"totalRevenue" firestore:"totalRevenue"`
	Cost                  Summary          `json:"cost" firestore:"cost"`
	AverageCompletionDays Days             `json:"averageCompletionDays" firestore:"averageCompletionDays"`
	ByStatus              []KeyCount       `json:"byStatus" firestore:"byStatus"`
	ByCategory            []KeyCount       `json:"byCategory" firestore:"byCategory"`
	Customers             CustomerInsights `json:"customers" firestore:"customers"`
	RecentRepairs         []RepairDigest   `json:"recentRepairs" firestore:"recentRepairs"`
	UpcomingDeadlines     []RepairDigest   `json:"upcomingDeadlines" firestore:"upcomingDeadlines"`
	Invoices              InvoiceSummary   `json:"invoices" firestore:"invoices"`
}
