package report

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WriteDigest renders the per-engineer stand-up digest.
func WriteDigest(w io.Writer, d *Digest) error {
	fmt.Fprintf(w, "Sprint: %s\n\n", d.SprintName)
	for _, eng := range d.Engineers {
		fmt.Fprintln(w, eng.DisplayName)
		for _, issue := range eng.Issues {
			fmt.Fprintf(w, "  %s\n", issue.URL)
			fmt.Fprintf(w, "  %s %s%s\n", issue.Key, issue.Summary, pointsSuffix(issue.Points))
			if issue.CommentLine != "" {
				fmt.Fprintf(w, "    latest: %s\n", issue.CommentLine)
			}
			for _, dep := range issue.Dependencies {
				fmt.Fprintf(w, "    depends on %s [%s] %s\n", dep.Key, dep.Status, dep.Summary)
				for _, change := range dep.Changes {
					fmt.Fprintf(w, "      %s\n", change)
				}
			}
		}
		fmt.Fprintln(w)
	}
	if d.NeedToken {
		fmt.Fprintln(w, "Hint: add a GitLab access token for merge request statistics")
	}
	return nil
}

// WriteTeamListing renders all sprint issues grouped by assignee,
// followed by the statistics block.
func WriteTeamListing(w io.Writer, l *TeamListing) error {
	fmt.Fprintf(w, "Sprint: %s\n\n", l.SprintName)
	for _, group := range l.Groups() {
		fmt.Fprintln(w, group.Name)
		for _, issue := range group.Issues {
			fmt.Fprintf(w, "  %s %s%s\n", issue.Key, issue.Summary, pointsSuffix(issue.Points))
		}
		fmt.Fprintln(w)
	}

	stats := l.Stats()
	titler := cases.Title(language.English)
	fmt.Fprintln(w, "Statistics")
	for _, sc := range stats.StatusCounts {
		fmt.Fprintf(w, "  %s: %d\n", titler.String(sc.Status), sc.Count)
	}
	fmt.Fprintf(w, "  Total issues: %d\n", stats.TotalIssues)
	fmt.Fprintf(w, "  Total story points: %s\n", formatPoints(stats.TotalPoints))
	return nil
}
