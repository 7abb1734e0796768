package digest

import (
	"context"
	"fmt"

	"github.com/Afrawles/sprintdigest/internal/jira"
)

// teamIssueCap bounds the unfiltered sprint listing.
const teamIssueCap = 200

// Collector retrieves sprint issues from the tracker.
type Collector struct {
	Client      TrackerClient
	Project     string
	RecentDays  int
	PointFields []string
}

// ForEngineer returns the engineer's sprint issues that are either in an
// actionable status or were updated within the recency window. The window
// is a separate config-driven day count, not the comment cutoff.
func (c *Collector) ForEngineer(ctx context.Context, assignee string, sprintID int) ([]jira.Issue, error) {
	jql := fmt.Sprintf(
		`project = %s AND sprint = %d AND assignee = %q AND (status in ("Blocked", "In Progress", "In Review") OR updated >= -%dd)`,
		c.Project, sprintID, assignee, c.RecentDays)
	return c.Client.SearchIssues(ctx, jql, c.fields(), 100)
}

// ForSprint returns every issue in the sprint, capped, for team listings.
func (c *Collector) ForSprint(ctx context.Context, sprintID int) ([]jira.Issue, error) {
	jql := fmt.Sprintf("sprint = %d", sprintID)
	return c.Client.SearchIssues(ctx, jql, c.fields(), teamIssueCap)
}

func (c *Collector) fields() []string {
	fields := []string{"key", "summary", "status", "assignee", "updated", "issuelinks"}
	return append(fields, c.PointFields...)
}

// StoryPoints probes the candidate estimate fields in order and returns
// the first numeric value. A nil return means unestimated, which is not
// the same as an estimate of zero.
func (c *Collector) StoryPoints(issue *jira.Issue) *float64 {
	for _, id := range c.PointFields {
		if v, ok := issue.Fields.Number(id); ok {
			return &v
		}
	}
	return nil
}
