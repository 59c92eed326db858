package core

import (
	"sort"

	"github.com/gitrecap/gitrecap/schema"
)

// BuildReport folds repository activities into the final aggregate for one
// author and one calendar year. Activities must arrive in discovery order:
// the commit list is capped at MaxReportCommits by keeping the first entries
// in accumulation order, so input order decides what survives the cap.
func BuildReport(activities []*schema.RepoActivity, authorEmail, authorName string) *schema.Report {
	report := &schema.Report{
		Repositories:       make([]schema.RepoSummary, 0, len(activities)),
		Commits:            make([]schema.ReportCommit, 0),
		HourlyDistribution: make([]int, schema.HourBuckets),
		DailyDistribution:  make([]int, schema.DayBuckets),
		FileTypes:          make(map[string]int),
		AuthorEmail:        authorEmail,
		AuthorName:         authorName,
	}

	for _, activity := range activities {
		summary := schema.RepoSummary{Name: activity.Name}

		for _, commit := range activity.Commits {
			summary.Commits++
			summary.Additions += commit.Additions
			summary.Deletions += commit.Deletions

			report.TotalCommits++
			report.TotalAdditions += commit.Additions
			report.TotalDeletions += commit.Deletions

			// Histograms use the commit's own wall clock: the parsed
			// timestamp keeps the original UTC offset.
			report.HourlyDistribution[commit.Timestamp.Hour()]++
			report.DailyDistribution[int(commit.Timestamp.Weekday())]++

			if len(report.Commits) < schema.MaxReportCommits {
				report.Commits = append(report.Commits, schema.ReportCommit{
					Hash:      commit.Hash,
					Date:      commit.Timestamp,
					Message:   commit.Subject,
					Repo:      commit.Repo,
					Additions: commit.Additions,
					Deletions: commit.Deletions,
				})
			}
		}

		for ext, count := range activity.FileTypes {
			report.FileTypes[ext] += count
		}

		// Only repositories with at least one matching commit get a summary.
		if summary.Commits > 0 {
			report.Repositories = append(report.Repositories, summary)
		}
	}

	// Rank repositories by commit volume; equals keep discovery order.
	sort.SliceStable(report.Repositories, func(i, j int) bool {
		return report.Repositories[i].Commits > report.Repositories[j].Commits
	})

	return report
}
