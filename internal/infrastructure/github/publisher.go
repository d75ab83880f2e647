package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"ComplianceScanner/internal/config"
	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
)

const requestTimeout = 30 * time.Second

// Publisher opens a pull request carrying the rendered digest.
type Publisher struct {
	client *gh.Client
	repo   string
}

var _ ports.ReportPublisher = (*Publisher)(nil)

// NewPublisher builds a token-authenticated publisher; call only with a token.
func NewPublisher(cfg config.GitHubConfig) *Publisher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = requestTimeout

	return &Publisher{
		client: gh.NewClient(tc),
		repo:   cfg.Repo,
	}
}

// Publish creates a dated branch, commits the report file, and opens a PR.
func (p *Publisher) Publish(ctx context.Context, report string, docCount int) (domain.PublishResult, error) {
	if p == nil || p.client == nil {
		return domain.PublishResult{}, errors.New("github publisher is not configured")
	}

	owner, name, err := splitRepo(p.repo)
	if err != nil {
		return domain.PublishResult{}, err
	}

	repo, _, err := p.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("get repository: %w", err)
	}
	defaultBranch := repo.GetDefaultBranch()

	base, _, err := p.client.Repositories.GetBranch(ctx, owner, name, defaultBranch, 1)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("get default branch: %w", err)
	}

	now := time.Now()
	timestamp := now.Format("20060102_150405")
	branch := fmt.Sprintf("nist-update-%s", timestamp)
	filePath := fmt.Sprintf("reports/nist-compliance-%s.md", timestamp)

	_, _, err = p.client.Git.CreateRef(ctx, owner, name, &gh.Reference{
		Ref:    gh.Ptr("refs/heads/" + branch),
		Object: &gh.GitObject{SHA: base.Commit.SHA},
	})
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("create branch: %w", err)
	}

	_, _, err = p.client.Repositories.CreateFile(ctx, owner, name, filePath, &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(fmt.Sprintf("Add NIST compliance update summary - %s", now.Format("2006-01-02"))),
		Content: []byte(report),
		Branch:  gh.Ptr(branch),
	})
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("create report file: %w", err)
	}

	pr, _, err := p.client.PullRequests.Create(ctx, owner, name, &gh.NewPullRequest{
		Title: gh.Ptr(fmt.Sprintf("NIST Compliance Update - %s", now.Format("2006-01-02"))),
		Body:  gh.Ptr(prBody(report, docCount, filePath, now)),
		Head:  gh.Ptr(branch),
		Base:  gh.Ptr(defaultBranch),
	})
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("create pull request: %w", err)
	}

	return domain.PublishResult{
		SummaryURL: fmt.Sprintf("https://github.com/%s/blob/%s/%s", p.repo, branch, filePath),
		PRURL:      pr.GetHTMLURL(),
		Branch:     branch,
		FilePath:   filePath,
	}, nil
}

func prBody(report string, docCount int, filePath string, now time.Time) string {
	var b strings.Builder
	b.WriteString("# NIST SP 800 Compliance Update Summary\n\n")
	b.WriteString("This automated pull request contains the latest NIST compliance updates ")
	b.WriteString("relevant to IT software development organizations.\n\n")
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- **Articles Processed:** %d\n", docCount)
	fmt.Fprintf(&b, "- **Generated:** %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **File:** `%s`\n\n", filePath)
	b.WriteString("## Key Updates\n")
	for _, title := range findingTitles(report, 5) {
		fmt.Fprintf(&b, "- %s\n", title)
	}
	b.WriteString("\n## Next Steps\n")
	b.WriteString("1. Review the summary for actionable items\n")
	b.WriteString("2. Update internal compliance documentation\n")
	b.WriteString("3. Communicate relevant changes to development teams\n")
	b.WriteString("4. Schedule compliance assessment updates\n")
	return b.String()
}

// findingTitles pulls up to max finding headings back out of the rendered
// report so the PR body can preview them.
func findingTitles(report string, max int) []string {
	var titles []string
	for _, line := range strings.Split(report, "\n") {
		if !strings.HasPrefix(line, "### ") {
			continue
		}
		title := strings.TrimPrefix(line, "### ")
		if idx := strings.Index(title, ". "); idx >= 0 {
			title = title[idx+2:]
		}
		titles = append(titles, title)
		if len(titles) >= max {
			break
		}
	}
	return titles
}

func splitRepo(repo string) (string, string, error) {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository %q must be owner/name", repo)
	}
	return parts[0], parts[1], nil
}
