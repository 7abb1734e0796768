package digest

import (
	"context"

	"github.com/Afrawles/sprintdigest/internal/gitlab"
	"github.com/Afrawles/sprintdigest/internal/jira"
)

// TrackerClient is the slice of the issue tracker API the digest consumes.
type TrackerClient interface {
	Sprints(ctx context.Context, boardID, startAt, maxResults int) (*jira.SprintPage, error)
	SearchIssues(ctx context.Context, jql string, fields []string, maxResults int) ([]jira.Issue, error)
	IssueWithChangelog(ctx context.Context, key string) (*jira.Issue, error)
	Comments(ctx context.Context, key string) ([]jira.Comment, error)
}

// SCMClient is the slice of the source control API used for merge request
// statistics.
type SCMClient interface {
	MergeRequest(ctx context.Context, projectPath string, iid int) (*gitlab.MergeRequest, error)
	MergeRequestChanges(ctx context.Context, projectPath string, iid int) (*gitlab.MRChanges, error)
	HasToken() bool
}
