package analytics

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func repair(id, client, created string) model.Repair {
	return model.Repair{ID: id, ClientName: client, CreatedAt: model.DateString(created)}
}

func TestCountBySumsToLength(t *testing.T) {
	lists := [][]model.Repair{
		nil,
		{repair("1", "Ada", "")},
		{repair("1", "Ada", ""), repair("2", "Bo", ""), repair("3", "Ada", ""), repair("4", "", "")},
	}
	for i, list := range lists {
		total := 0
		for _, c := range CountBy(list, ClientKey) {
			total += c.Count
		}
		if total != len(list) {
			t.Errorf("list %d: sum of counts = %d, want %d", i, total, len(list))
		}
	}
}

func TestCountByFirstSeenOrder(t *testing.T) {
	list := []model.Repair{
		repair("1", "Cy", ""), repair("2", "Ada", ""), repair("3", "Cy", ""),
		{ID: "4", ClientEmail: "bo@example.com"}, {ID: "5"},
	}
	want := []model.KeyCount{
		{Key: "Cy", Count: 2},
		{Key: "Ada", Count: 1},
		{Key: "bo@example.com", Count: 1},
		{Key: UnknownKey, Count: 1},
	}
	if diff := cmp.Diff(want, CountBy(list, ClientKey)); diff != "" {
		t.Errorf("CountBy mismatch (-want +got):\n%s", diff)
	}
}

func TestTopByCountStableTies(t *testing.T) {
	counts := []model.KeyCount{
		{Key: "a", Count: 1},
		{Key: "b", Count: 3},
		{Key: "c", Count: 1},
		{Key: "d", Count: 3},
		{Key: "e", Count: 2},
	}
	got := TopByCount(counts, 3)
	want := []model.KeyCount{{Key: "b", Count: 3}, {Key: "d", Count: 3}, {Key: "e", Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopByCount mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("not non-increasing at %d: %v", i, got)
		}
	}
	if counts[0].Key != "a" || counts[1].Key != "b" {
		t.Errorf("input reordered: %v", counts)
	}

	all := TopByCount(counts[:2], 3)
	if len(all) != 2 {
		t.Errorf("short input truncated wrongly: %v", all)
	}
}

func TestTopCustomers(t *testing.T) {
	var list []model.Repair
	for i, name := range []string{"Ada", "Bo", "Ada", "Cy", "Bo", "Dee", "Ada", "Cy"} {
		list = append(list, repair(fmt.Sprint(i), name, ""))
	}
	got := TopCustomers(list)
	want := []model.KeyCount{{Key: "Ada", Count: 3}, {Key: "Bo", Count: 2}, {Key: "Cy", Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopCustomers mismatch (-want +got):\n%s", diff)
	}
}

func TestMostRecent(t *testing.T) {
	list := []model.Repair{
		repair("old", "A", "2024-01-01"),
		repair("bad1", "B", "not a date"),
		repair("new", "C", "2024-03-01T12:00:00Z"),
		repair("none", "D", ""),
		repair("mid", "E", "2024-02-01"),
	}
	got := MostRecent(list, 4)
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	want := []string{"new", "mid", "old", "bad1"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("MostRecent order (-want +got):\n%s", diff)
	}
	if list[0].ID != "old" || list[2].ID != "new" {
		t.Error("input was mutated")
	}
}

func TestUpcomingDeadlines(t *testing.T) {
	var list []model.Repair
	for i := 0; i < 8; i++ {
		r := repair(fmt.Sprintf("r%d", i), "X", "")
		if i%3 != 0 {
			r.PromiseDate = model.DateString(fmt.Sprintf("2024-05-%02d", 20-i))
		}
		list = append(list, r)
	}
	got := UpcomingDeadlines(list)
	if len(got) > DeadlineLimit {
		t.Fatalf("got %d deadlines, max %d", len(got), DeadlineLimit)
	}
	for _, r := range got {
		if r.PromiseDate.IsZero() {
			t.Errorf("repair %s without promise date included", r.ID)
		}
	}
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	want := []string{"r7", "r5", "r4", "r2", "r1"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("deadline order (-want +got):\n%s", diff)
	}
}

func TestUpcomingDeadlinesEmpty(t *testing.T) {
	got := UpcomingDeadlines([]model.Repair{repair("a", "A", "2024-01-01")})
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestAverageCompletionTime(t *testing.T) {
	if got := AverageCompletionTime(nil); got.Valid || got.String() != model.NotAvailable {
		t.Errorf("empty input = %+v, want N/A", got)
	}

	list := []model.Repair{
		{Completed: true, CreatedAt: "2024-01-01", CompletedAt: "2024-01-03"},
		{Completed: true, CreatedAt: "2024-01-01T00:00:00Z", CompletedAt: "2024-01-05T00:00:00Z"},
		{Completed: false, CreatedAt: "2024-01-01", CompletedAt: "2024-02-01"},
		{Completed: true, CreatedAt: "2024-01-01"},
		{Completed: true, CreatedAt: "garbage", CompletedAt: "2024-01-02"},
	}
	got := AverageCompletionTime(list)
	if !got.Valid || got.Value != 3 {
		t.Errorf("average = %+v, want 3 days", got)
	}

	notDone := []model.Repair{{Completed: false, CreatedAt: "2024-01-01", CompletedAt: "2024-01-02"}}
	if got := AverageCompletionTime(notDone); got.Valid {
		t.Errorf("no completed repairs = %+v, want N/A", got)
	}
}

func TestTotalRevenueCoercion(t *testing.T) {
	list := model.DecodeRepairs([]byte(`[{"totalCost":10},{"totalCost":"20"},{"totalCost":null},{"totalCost":30}]`))
	if got := TotalRevenue(list); got != 60 {
		t.Errorf("TotalRevenue = %d, want 60", got)
	}
	if got := TotalRevenue(nil); got != 0 {
		t.Errorf("TotalRevenue(nil) = %d", got)
	}
}

func TestSummarize(t *testing.T) {
	list := []model.Repair{{TotalCost: 10}, {TotalCost: 40}, {}, {TotalCost: 25.5}}
	want := model.Summary{Count: 4, Sum: 75.5, Average: 18.875, Min: 0, Max: 40}
	if diff := cmp.Diff(want, CostSummary(list)); diff != "" {
		t.Errorf("CostSummary (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.Summary{}, CostSummary(nil)); diff != "" {
		t.Errorf("empty summary (-want +got):\n%s", diff)
	}
}

func TestCountByCategory(t *testing.T) {
	list := []model.Repair{
		{Status: "RECEIVED"}, {Status: "receiving"}, {Status: "IN THE OVEN"},
		{Status: "completed"}, {Status: "picked-up"}, {Status: "on hold"},
	}
	want := []model.KeyCount{
		{Key: "Initial", Count: 2},
		{Key: "Preparation", Count: 0},
		{Key: "Production", Count: 1},
		{Key: "Quality Control", Count: 0},
		{Key: "Completion", Count: 2},
		{Key: "Unknown", Count: 1},
	}
	if diff := cmp.Diff(want, CountByCategory(list)); diff != "" {
		t.Errorf("CountByCategory (-want +got):\n%s", diff)
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))
	list := []model.Repair{
		{ID: "1", ClientName: "Ada", Status: "RECEIVED", TotalCost: 100, CreatedAt: "2024-05-01", PromiseDate: "2024-06-10", IsRush: true},
		{ID: "2", ClientName: "Ada", Status: "completed", Completed: true, TotalCost: 50, CreatedAt: "2024-04-01", CompletedAt: "2024-04-03"},
		{ID: "3", ClientName: "Bo", Status: "CANCELLED", CreatedAt: "2024-05-15"},
		{ID: "4", ClientName: "Cy", Status: "mystery"},
	}
	invoices := []model.Invoice{
		{ID: "i1", Amount: 200, Payments: []model.Payment{{Amount: 200}}},
		{ID: "i2", Amount: 100, Payments: []model.Payment{{Amount: 40}}},
	}
	got := BuildDashboard(list, invoices, now)

	if !got.LastUpdated.Equal(now) || got.LastUpdated.Location() != time.UTC {
		t.Errorf("LastUpdated = %v", got.LastUpdated)
	}
	if got.TotalRepairs != 4 || got.CompletedRepairs != 1 || got.ActiveRepairs != 2 || got.RushRepairs != 1 {
		t.Errorf("counts = total %d completed %d active %d rush %d",
			got.TotalRepairs, got.CompletedRepairs, got.ActiveRepairs, got.RushRepairs)
	}
	if got.TotalRevenue != 150 {
		t.Errorf("revenue = %d", got.TotalRevenue)
	}
	if !got.AverageCompletionDays.Valid || got.AverageCompletionDays.Value != 2 {
		t.Errorf("average completion = %+v", got.AverageCompletionDays)
	}
	if got.Customers.TotalCustomers != 3 || got.Customers.RepeatCustomers != 1 {
		t.Errorf("customers = %+v", got.Customers)
	}
	if len(got.UpcomingDeadlines) != 1 || got.UpcomingDeadlines[0].ID != "1" {
		t.Errorf("deadlines = %+v", got.UpcomingDeadlines)
	}
	if got.RecentRepairs[0].ID != "3" || got.RecentRepairs[3].CreatedAt != model.NotAvailable {
		t.Errorf("recent = %+v", got.RecentRepairs)
	}
	wantInvoices := model.InvoiceSummary{Count: 2, TotalInvoiced: 300, TotalPaid: 240, Outstanding: 60, FullyPaid: 1}
	if diff := cmp.Diff(wantInvoices, got.Invoices); diff != "" {
		t.Errorf("invoices (-want +got):\n%s", diff)
	}
	if got.RecentRepairs[3].StatusColor != "default" || got.RecentRepairs[3].StatusLabel != "mystery" {
		t.Errorf("unknown status digest = %+v", got.RecentRepairs[3])
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	got := BuildDashboard(nil, nil, time.Unix(0, 0))
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["averageCompletionDays"] != model.NotAvailable {
		t.Errorf("averageCompletionDays = %v, want N/A", decoded["averageCompletionDays"])
	}
	if decoded["totalRepairs"].(float64) != 0 {
		t.Errorf("totalRepairs = %v", decoded["totalRepairs"])
	}
	for _, key := range []string{"byStatus", "recentRepairs", "upcomingDeadlines"} {
		if _, ok := decoded[key].([]any); !ok {
			t.Errorf("%s = %v, want empty array", key, decoded[key])
		}
	}
}
