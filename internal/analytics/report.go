package analytics

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// Section titles of the exported report, in emit order.
const (
	sectionSummary    = "Summary"
	sectionCategories = "Category Breakdown"
	sectionStock      = "Stock Distribution"
	sectionReorder    = "Top Items Needing Reorder"
)

// WriteReport renders the report as flat text: a Summary key-value block
// followed by three comma-separated tables, sections separated by a blank
// line. The layout is the download format served by the export endpoint.
func WriteReport(w io.Writer, report *domain.AnalysisReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, sectionSummary)
	fmt.Fprintf(bw, "Total Items: %d\n", report.Summary.TotalItems)
	fmt.Fprintf(bw, "Total Stock: %d\n", report.Summary.TotalStock)
	fmt.Fprintf(bw, "Total Value: %.2f\n", report.Summary.TotalValue)
	fmt.Fprintf(bw, "Items Below Reorder Point: %d\n", report.Summary.ItemsBelowReorder)
	fmt.Fprintf(bw, "Average Turnover Rate: %.2f\n", report.Summary.AverageTurnover)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, sectionCategories)
	fmt.Fprintln(bw, "Category,Item Count,Total Stock,Percentage")
	for _, stats := range report.CategoryRollup {
		pct := 0.0
		if report.Summary.TotalStock > 0 {
			pct = float64(stats.TotalStock) / float64(report.Summary.TotalStock) * 100
		}
		fmt.Fprintf(bw, "%s,%d,%d,%.1f%%\n", stats.Category, stats.Count, stats.TotalStock, pct)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, sectionStock)
	fmt.Fprintln(bw, "Range,Count")
	for _, r := range report.StockDistribution {
		fmt.Fprintf(bw, "%s,%d\n", r.Label, r.Count)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, sectionReorder)
	fmt.Fprintln(bw, "SKU ID,Name,Category,Current Stock,Reorder Point,Shortage")
	for _, item := range report.TopReorderItems {
		fmt.Fprintf(bw, "%s,%s,%s,%d,%d,%d\n",
			item.SKUID, item.Name, item.Category,
			item.CurrentStock, item.ReorderPoint, item.Shortage)
	}

	return bw.Flush()
}

// FormatReport is WriteReport into a string.
func FormatReport(report *domain.AnalysisReport) string {
	var sb strings.Builder
	_ = WriteReport(&sb, report)
	return sb.String()
}

// ParseCategoryBreakdown extracts the per-category item counts from an
// exported report, keyed by category. Used to diff a fresh report against
// a previously exported one.
func ParseCategoryBreakdown(text string) (map[domain.Category]int, error) {
	counts := make(map[domain.Category]int)

	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == sectionCategories {
			start = i + 2 // skip the section title and the table header
			break
		}
	}
	if start < 0 || start >= len(lines) {
		return nil, fmt.Errorf("report has no %q section", sectionCategories)
	}

	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		parts := strings.Split(line, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("malformed category row %q", line)
		}
		cat, ok := domain.ParseCategory(parts[0])
		if !ok {
			return nil, fmt.Errorf("unknown category %q", parts[0])
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad item count in row %q: %w", line, err)
		}
		counts[cat] = count
	}

	return counts, nil
}
