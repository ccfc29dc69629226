package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/goldbench/repairshop/apps/api/internal/business/payments"
	"github.com/goldbench/repairshop/apps/api/internal/business/status"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

const (
	// TopCustomerCount is the size of the customer-insights leaderboard.
	TopCustomerCount = 3
	// DeadlineLimit caps the upcoming-deadline list.
	DeadlineLimit = 5
	// RecentLimit caps the recent-repairs list.
	RecentLimit = 5
	// UnknownKey groups records with no usable key.
	UnknownKey = "Unknown"
)

// CountBy counts records per key. Buckets are returned in the order their key
// was first seen, so later stable sorts break ties by input order.
func CountBy(repairs []model.Repair, key func(model.Repair) string) []model.KeyCount {
	index := make(map[string]int)
	var out []model.KeyCount
	for _, r := range repairs {
		k := key(r)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, model.KeyCount{Key: k, Count: 1})
	}
	if out == nil {
		out = []model.KeyCount{}
	}
	return out
}

// ClientKey identifies the client of a repair by name, then email.
func ClientKey(r model.Repair) string {
	if name := strings.TrimSpace(r.ClientName); name != "" {
		return name
	}
	if email := strings.TrimSpace(r.ClientEmail); email != "" {
		return email
	}
	return UnknownKey
}

// StatusKey groups by the stored status string as written.
func StatusKey(r model.Repair) string {
	if strings.TrimSpace(r.Status) == "" {
		return UnknownKey
	}
	return r.Status
}

// TopByCount returns the n largest buckets, descending. Ties keep their input
// order. The input is not modified.
func TopByCount(counts []model.KeyCount, n int) []model.KeyCount {
	sorted := make([]model.KeyCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TopCustomers returns the three clients with the most repairs.
func TopCustomers(repairs []model.Repair) []model.KeyCount {
	return TopByCount(CountBy(repairs, ClientKey), TopCustomerCount)
}

// MostRecent returns up to n repairs, newest createdAt first. Repairs whose
// createdAt does not parse sort after all dated repairs, in input order.
func MostRecent(repairs []model.Repair, n int) []model.Repair {
	sorted := cloneRepairs(repairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := sorted[i].CreatedAt.Time()
		tj, okJ := sorted[j].CreatedAt.Time()
		if !okI {
			return false
		}
		return !okJ || ti.After(tj)
	})
	return limit(sorted, n)
}

// UpcomingDeadlines returns at most five repairs that have a promise date,
// soonest first. Unparseable promise dates sort last.
func UpcomingDeadlines(repairs []model.Repair) []model.Repair {
	var withDate []model.Repair
	for _, r := range repairs {
		if !r.PromiseDate.IsZero() {
			withDate = append(withDate, r)
		}
	}
	sort.SliceStable(withDate, func(i, j int) bool {
		ti, okI := withDate[i].PromiseDate.Time()
		tj, okJ := withDate[j].PromiseDate.Time()
		if !okI {
			return false
		}
		return !okJ || ti.Before(tj)
	})
	return limit(withDate, DeadlineLimit)
}

// Summarize reduces a numeric field to count, sum, average, min and max.
// An empty input yields the zero Summary.
func Summarize[T any](items []T, value func(T) float64) model.Summary {
	var s model.Summary
	for i, item := range items {
		v := value(item)
		s.Sum += v
		if i == 0 || v < s.Min {
			s.Min = v
		}
		if i == 0 || v > s.Max {
			s.Max = v
		}
	}
	s.Count = len(items)
	if s.Count > 0 {
		s.Average = s.Sum / float64(s.Count)
	}
	return s
}

// CostSummary summarizes totalCost; missing costs count as zero.
func CostSummary(repairs []model.Repair) model.Summary {
	return Summarize(repairs, func(r model.Repair) float64 { return r.TotalCost.Float() })
}

// TotalRevenue sums totalCost after an integer parse of each value, so
// [10, "20", null, 30] totals 60.
func TotalRevenue(repairs []model.Repair) int64 {
	var total int64
	for _, r := range repairs {
		total += r.TotalCost.Int()
	}
	return total
}

// AverageCompletionTime averages completedAt - createdAt in days over
// completed repairs whose dates both parse. With no such repair the result
// is not valid and renders as N/A.
func AverageCompletionTime(repairs []model.Repair) model.Days {
	var total float64
	var n int
	for _, r := range repairs {
		if !r.Completed {
			continue
		}
		created, ok := r.CreatedAt.Time()
		if !ok {
			continue
		}
		completed, ok := r.CompletedAt.Time()
		if !ok {
			continue
		}
		total += completed.Sub(created).Hours() / 24
		n++
	}
	if n == 0 {
		return model.Days{}
	}
	return model.Days{Value: total / float64(n), Valid: true}
}

// CountByCategory buckets repairs by status category in dashboard order.
// The Unknown bucket is appended only when some status did not classify.
func CountByCategory(repairs []model.Repair) []model.KeyCount {
	counts := make(map[status.Category]int)
	for _, r := range repairs {
		counts[status.CategoryOf(r.Status)]++
	}
	cats := status.Categories()
	out := make([]model.KeyCount, 0, len(cats)+1)
	for _, c := range cats {
		out = append(out, model.KeyCount{Key: string(c), Count: counts[c]})
	}
	if n := counts[status.CategoryUnknown]; n > 0 {
		out = append(out, model.KeyCount{Key: string(status.CategoryUnknown), Count: n})
	}
	return out
}

// Insights computes the customer-insights card.
func Insights(repairs []model.Repair) model.CustomerInsights {
	counts := CountBy(repairs, ClientKey)
	var insights model.CustomerInsights
	for _, c := range counts {
		if c.Key == UnknownKey {
			continue
		}
		insights.TotalCustomers++
		if c.Count > 1 {
			insights.RepeatCustomers++
		}
	}
	insights.TopCustomers = TopByCount(counts, TopCustomerCount)
	return insights
}

// Digest renders the short dashboard form of a repair.
func Digest(r model.Repair) model.RepairDigest {
	d := status.Classify(r.Status)
	return model.RepairDigest{
		ID:           r.ID,
		RepairNumber: r.RepairNumber,
		ClientName:   ClientKey(r),
		Status:       r.Status,
		StatusLabel:  d.Label,
		StatusColor:  d.Color,
		CreatedAt:    r.CreatedAt.Display(),
		PromiseDate:  r.PromiseDate.Display(),
	}
}

// BuildDashboard composes every dashboard card from one pass of inputs.
func BuildDashboard(repairs []model.Repair, invoices []model.Invoice, now time.Time) model.DashboardStats {
	stats := model.DashboardStats{
		LastUpdated:           now.UTC(),
		TotalRepairs:          len(repairs),
		TotalRevenue:          TotalRevenue(repairs),
		Cost:                  CostSummary(repairs),
		AverageCompletionDays: AverageCompletionTime(repairs),
		ByStatus:              CountBy(repairs, StatusKey),
		ByCategory:            CountByCategory(repairs),
		Customers:             Insights(repairs),
		RecentRepairs:         digests(MostRecent(repairs, RecentLimit)),
		UpcomingDeadlines:     digests(UpcomingDeadlines(repairs)),
		Invoices:              payments.Summarize(invoices),
	}
	for _, r := range repairs {
		if r.Completed {
			stats.CompletedRepairs++
		} else if s, ok := status.Parse(r.Status); !ok || !s.IsTerminal() {
			stats.ActiveRepairs++
		}
		if r.IsRush {
			stats.RushRepairs++
		}
	}
	return stats
}

func digests(repairs []model.Repair) []model.RepairDigest {
	out := make([]model.RepairDigest, 0, len(repairs))
	for _, r := range repairs {
		out = append(out, Digest(r))
	}
	return out
}

func cloneRepairs(repairs []model.Repair) []model.Repair {
	out := make([]model.Repair, len(repairs))
	copy(out, repairs)
	return out
}

func limit(repairs []model.Repair, n int) []model.Repair {
	if repairs == nil {
		return []model.Repair{}
	}
	if n >= 0 && n < len(repairs) {
		return repairs[:n]
	}
	return repairs
}
