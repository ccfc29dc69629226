package util

import (
	"regexp"
	"strings"

	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

var (
	// htmlTagPattern matches HTML tags like <b>, </span>, <br/>.
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	// multiSpacePattern matches runs of whitespace.
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// CleanText strips HTML remnants pasted into intake forms and collapses
// whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `<\/`, `</`)
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanEmail trims and lowercases an email address.
func CleanEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CleanRepair normalizes the free-text fields of a repair at intake. Status
// strings are left exactly as submitted.
func CleanRepair(r model.Repair) model.Repair {
	r.RepairNumber = strings.TrimSpace(r.RepairNumber)
	r.ClientName = CleanText(r.ClientName)
	r.ClientEmail = CleanEmail(r.ClientEmail)
	r.Description = CleanText(r.Description)
	r.ItemType = CleanText(r.ItemType)
	r.Metal = CleanText(r.Metal)
	r.AssignedArtisan = CleanText(r.AssignedArtisan)
	return r
}

// NeedsCleanup reports whether any free-text field of r would change under
// CleanRepair.
func NeedsCleanup(r model.Repair) bool {
	return CleanRepair(r) != r
}
