package digest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Afrawles/sprintdigest/internal/gitlab"
)

const botText = "Jane Doe created a merge request of backend on branch feature/login: ready for review"

func TestIsBotMRComment(t *testing.T) {
	tests := []struct {
		name   string
		author string
		text   string
		want   bool
	}{
		{name: "bot author with phrase", author: "Jira-GitLab Integration", text: "a Merge Request was opened", want: true},
		{name: "bot author without phrase", author: "jira-gitlab", text: "just chatting", want: false},
		{name: "human author with phrase", author: "Jane Doe", text: "see the merge request", want: false},
		{name: "marker match is case-insensitive substring", author: "bot (JIRA-gitlab)", text: "merge request", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsBotMRComment(tt.author, tt.text, "jira-gitlab"))
		})
	}
}

func TestParseBotComment(t *testing.T) {
	t.Run("extracts project and branch", func(t *testing.T) {
		id, ok := ParseBotComment(botText, "")
		require.True(t, ok)
		require.Equal(t, "backend", id.Project)
		require.Equal(t, "feature/login", id.Branch)
		require.False(t, id.HasURL())
	})

	t.Run("both phrases required", func(t *testing.T) {
		_, ok := ParseBotComment("a merge request of backend appeared", "")
		require.False(t, ok)
	})

	t.Run("carries parsed URL identity", func(t *testing.T) {
		id, ok := ParseBotComment(botText, "https://gitlab.example.com/group/proj/-/merge_requests/42")
		require.True(t, ok)
		require.True(t, id.HasURL())
		require.Equal(t, "group/proj", id.ProjectPath)
		require.Equal(t, 42, id.IID)
	})
}

func TestParseMRURL(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantProject string
		wantIID     int
	}{
		{
			name:        "canonical URL",
			raw:         "https://gitlab.example.com/group/proj/-/merge_requests/42",
			wantProject: "group/proj",
			wantIID:     42,
		},
		{
			name:        "nested group with trailing segment",
			raw:         "https://gitlab.example.com/a/b/c/-/merge_requests/7/diffs",
			wantProject: "a/b/c",
			wantIID:     7,
		},
		{name: "no merge request marker", raw: "https://gitlab.example.com/group/proj/-/issues/42"},
		{name: "non-numeric id", raw: "https://gitlab.example.com/group/proj/-/merge_requests/latest"},
		{name: "empty project", raw: "https://gitlab.example.com/-/merge_requests/42"},
		{name: "unparsable", raw: "::not a url::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, iid := ParseMRURL(tt.raw)
			require.Equal(t, tt.wantProject, project)
			require.Equal(t, tt.wantIID, iid)
		})
	}
}

func TestEnricherDescribe(t *testing.T) {
	mrURL := "https://gitlab.example.com/group/proj/-/merge_requests/42"
	mr := &gitlab.MergeRequest{State: "merged", Author: gitlab.User{Name: "Jane"}}
	changes := &gitlab.MRChanges{Changes: []gitlab.Change{
		{Diff: "+++ b/a.go\n--- a/a.go\n+one\n+two\n-three\n"},
		{Diff: "+++ b/b.go\n--- a/b.go\n+four\n"},
	}}

	t.Run("full statistics", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{mr: mr, changes: changes, token: true}, Log: zerolog.Nop()}
		line, needToken := e.Describe(context.Background(), botText, mrURL)
		require.Equal(t, "MR feature/login @ backend [merged, 2 files, +3/-1] ("+mrURL+")", line)
		require.False(t, needToken)
	})

	t.Run("auth failure asks for a token", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{mrErr: gitlab.ErrAuthRequired}, Log: zerolog.Nop()}
		line, needToken := e.Describe(context.Background(), botText, mrURL)
		require.Equal(t, "MR feature/login @ backend ("+mrURL+")", line)
		require.True(t, needToken)
	})

	t.Run("not found without token asks for a token", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{mrErr: gitlab.ErrNotFound}, Log: zerolog.Nop()}
		_, needToken := e.Describe(context.Background(), botText, mrURL)
		require.True(t, needToken)
	})

	t.Run("not found with token degrades silently", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{mrErr: gitlab.ErrNotFound, token: true}, Log: zerolog.Nop()}
		line, needToken := e.Describe(context.Background(), botText, mrURL)
		require.Equal(t, "MR feature/login @ backend ("+mrURL+")", line)
		require.False(t, needToken)
	})

	t.Run("changes failure degrades silently", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{mr: mr, changesErr: gitlab.ErrUnavailable, token: true}, Log: zerolog.Nop()}
		line, needToken := e.Describe(context.Background(), botText, mrURL)
		require.Equal(t, "MR feature/login @ backend ("+mrURL+")", line)
		require.False(t, needToken)
	})

	t.Run("identity without link", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{}, Log: zerolog.Nop()}
		line, needToken := e.Describe(context.Background(), botText, "")
		require.Equal(t, "MR feature/login @ backend", line)
		require.False(t, needToken)
	})

	t.Run("unparsed identity falls back to the marker", func(t *testing.T) {
		e := &Enricher{Client: &fakeSCM{}, Log: zerolog.Nop()}
		line, needToken := e.Describe(context.Background(), "the merge request is ready", "")
		require.Equal(t, "merge request mentioned", line)
		require.False(t, needToken)
	})
}
