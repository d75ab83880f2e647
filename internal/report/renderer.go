// Package report renders the compliance digest. Rendering is pure: no I/O,
// no re-sorting, input order preserved throughout.
package report

import (
	"fmt"
	"strings"
	"time"

	"ComplianceScanner/internal/domain"
)

const (
	reportTitle = "NIST SP 800 Compliance Update Summary"
	generatorID = "NIST Compliance Scanner"
)

// recommendations is a fixed checklist; it is not derived from document content.
var recommendations = []string{
	"**Review Security Controls**: Assess current implementation of NIST SP 800-53 controls",
	"**Update SDLC Processes**: Integrate new secure development practices from SP 800-218",
	"**Enhance CI/CD Security**: Implement automated security testing in development pipelines",
	"**Supply Chain Assessment**: Review third-party components and implement SBOM practices",
	"**Access Control Review**: Update authentication and authorization mechanisms",
	"**Incident Response**: Revise incident response procedures based on new guidance",
}

var nextSteps = []string{
	"Review each publication in detail",
	"Conduct gap analysis against current practices",
	"Develop implementation roadmap",
	"Train development teams on new requirements",
	"Update security policies and procedures",
}

// Render formats the scored, filtered documents into a markdown report with a
// front-matter header, numbered finding blocks, a recommendations checklist,
// citations, and a generation footer.
func Render(docs []domain.Document, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---\n")
	fmt.Fprintf(&b, "title: %q\n", reportTitle)
	fmt.Fprintf(&b, "date: %q\n", generatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "articles_processed: %d\n", len(docs))
	fmt.Fprintf(&b, "generated_by: %q\n", generatorID)
	fmt.Fprintf(&b, "---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "**Generated:** %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Articles Processed:** %d\n\n", len(docs))

	b.WriteString("## Latest Updates\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "\n### %d. %s\n\n", i+1, orDefault(doc.Title, "Untitled"))
		fmt.Fprintf(&b, "- **URL:** %s\n", orDefault(doc.URL, "N/A"))
		fmt.Fprintf(&b, "- **Date:** %s\n", orDefault(doc.PublishedDate, "N/A"))
		fmt.Fprintf(&b, "- **Source:** %s\n", orDefault(doc.Source, "N/A"))
		fmt.Fprintf(&b, "- **Relevance Score:** %.2f\n", doc.RelevanceScore)
		fmt.Fprintf(&b, "- **Summary:** %s\n", orDefault(doc.Summary, "N/A"))
	}

	b.WriteString("\n## Key Recommendations for IT Teams\n\n")
	b.WriteString("Based on the analyzed NIST updates, consider the following actions:\n\n")
	for _, rec := range recommendations {
		fmt.Fprintf(&b, "- [ ] %s\n", rec)
	}

	b.WriteString("\n## Next Steps\n\n")
	for i, step := range nextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\n## Source Citations\n\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, orDefault(doc.Title, "Untitled"), orDefault(doc.URL, "#"))
	}

	fmt.Fprintf(&b, "\n---\n*This summary was generated automatically by the %s on %s*\n",
		generatorID, generatedAt.Format("2006-01-02 15:04:05"))

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
