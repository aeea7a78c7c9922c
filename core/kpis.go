package core

import (
	"slices"
	"sort"
	"strings"

	"github.com/huangsam/uatpulse/core/progress"
	"github.com/huangsam/uatpulse/schema"
)

// ComputeKPIs derives the headline tiles. Issue counts honor the platform filter,
// the progress figures do not.
func ComputeKPIs(feed *schema.Feed, platform string) schema.KPIs {
	var kpis schema.KPIs

	if last, ok := progress.Latest(feed.ProgressDaily); ok {
		kpis.InScope = last.InScope.Or(feed.Overview.InScope.Float())
		kpis.ExecutedPct = last.ExecutedPct.Float()
		kpis.PassPct = last.PassPct.Float()
	} else {
		kpis.InScope = feed.Overview.InScope.Float()
	}

	for _, issue := range feed.Issues {
		if !isOpen(issue) || !matchesPlatform(issue, platform) {
			continue
		}
		kpis.OpenDefects++
		if isBlockerOrCritical(issue.Priority.String()) {
			kpis.BlockerCritical++
		}
	}

	kpis.ExecutedTone = progress.KPITone(kpis.ExecutedPct)
	kpis.PassTone = progress.KPITone(kpis.PassPct)
	return kpis
}

// Platforms returns the sorted distinct platforms named by issues, or the default set.
func Platforms(issues []schema.Issue) []string {
	seen := make(map[string]struct{})
	for _, issue := range issues {
		if p := issue.Platform.String(); p != "" {
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return slices.Clone(schema.DefaultPlatforms)
	}

	platforms := make([]string, 0, len(seen))
	for p := range seen {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// FilterIssues returns the blocker/critical table rows for a platform.
// Status is not filtered so recently closed blockers stay visible.
func FilterIssues(issues []schema.Issue, platform string) []schema.IssueRow {
	rows := make([]schema.IssueRow, 0)
	for _, issue := range issues {
		if !isBlockerOrCritical(issue.Priority.String()) || !matchesPlatform(issue, platform) {
			continue
		}
		title := issue.Title.String()
		if title == "" {
			title = issue.Summary.String()
		}
		rows = append(rows, schema.IssueRow{
			ID:       issue.ID.String(),
			Title:    title,
			Platform: issue.Platform.String(),
			Priority: strings.TrimSpace(issue.Priority.String()),
			Status:   issue.Status.String(),
		})
	}
	return rows
}

// isOpen treats a missing status as open.
func isOpen(issue schema.Issue) bool {
	status := issue.Status.String()
	return status == "" || strings.ToLower(status) != "closed"
}

func matchesPlatform(issue schema.Issue, platform string) bool {
	return platform == "" || issue.Platform.String() == platform
}

func isBlockerOrCritical(priority string) bool {
	switch strings.TrimSpace(priority) {
	case schema.PriorityBlocker, schema.PriorityCritical:
		return true
	default:
		return false
	}
}
