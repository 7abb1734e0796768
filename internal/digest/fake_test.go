package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Afrawles/sprintdigest/internal/gitlab"
	"github.com/Afrawles/sprintdigest/internal/jira"
)

type fakeTracker struct {
	sprints       []jira.Sprint
	searchResults []jira.Issue
	searchErr     error
	issueByKey    map[string]*jira.Issue
	issueErr      map[string]error
	commentsByKey map[string][]jira.Comment
	commentsErr   map[string]error
}

func (f *fakeTracker) Sprints(_ context.Context, _, startAt, maxResults int) (*jira.SprintPage, error) {
	end := startAt + maxResults
	if end > len(f.sprints) {
		end = len(f.sprints)
	}
	var values []jira.Sprint
	if startAt < len(f.sprints) {
		values = f.sprints[startAt:end]
	}
	return &jira.SprintPage{StartAt: startAt, MaxResults: maxResults, Total: len(f.sprints), Values: values}, nil
}

func (f *fakeTracker) SearchIssues(context.Context, string, []string, int) ([]jira.Issue, error) {
	return f.searchResults, f.searchErr
}

func (f *fakeTracker) IssueWithChangelog(_ context.Context, key string) (*jira.Issue, error) {
	if err := f.issueErr[key]; err != nil {
		return nil, err
	}
	issue, ok := f.issueByKey[key]
	if !ok {
		return nil, fmt.Errorf("no such issue %s", key)
	}
	return issue, nil
}

func (f *fakeTracker) Comments(_ context.Context, key string) ([]jira.Comment, error) {
	if err := f.commentsErr[key]; err != nil {
		return nil, err
	}
	return f.commentsByKey[key], nil
}

type fakeSCM struct {
	mr         *gitlab.MergeRequest
	mrErr      error
	changes    *gitlab.MRChanges
	changesErr error
	token      bool
}

func (f *fakeSCM) MergeRequest(context.Context, string, int) (*gitlab.MergeRequest, error) {
	return f.mr, f.mrErr
}

func (f *fakeSCM) MergeRequestChanges(context.Context, string, int) (*gitlab.MRChanges, error) {
	return f.changes, f.changesErr
}

func (f *fakeSCM) HasToken() bool { return f.token }

// mustIssue decodes an issue fixture through the real JSON path so custom
// fields land in the raw field map.
func mustIssue(t *testing.T, raw string) jira.Issue {
	t.Helper()
	var issue jira.Issue
	require.NoError(t, json.Unmarshal([]byte(raw), &issue))
	return issue
}
