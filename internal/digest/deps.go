package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Afrawles/sprintdigest/internal/jira"
)

// Dependency is a link to an issue owned by another project.
type Dependency struct {
	Key      string
	Summary  string
	Status   string
	LinkType string
}

// fieldDescriptions maps changelog field names to digest wording. Fields
// outside this map do not earn a line.
var fieldDescriptions = map[string]string{
	"status":      "status changed",
	"assignee":    "reassigned",
	"summary":     "summary edited",
	"description": "description updated",
	"priority":    "priority changed",
}

// ProjectOf returns the project prefix of an issue key.
func ProjectOf(key string) string {
	if i := strings.Index(key, "-"); i > 0 {
		return key[:i]
	}
	return key
}

// CrossTeamDependencies extracts links pointing outside the given project.
// The outward issue is taken first, inward as fallback. Status and summary
// come from the link payload embedded in the outer issue response; they
// are not re-fetched.
func CrossTeamDependencies(issue *jira.Issue, project string) []Dependency {
	var out []Dependency
	for _, link := range issue.Fields.IssueLinks {
		linked := link.OutwardIssue
		if linked == nil {
			linked = link.InwardIssue
		}
		if linked == nil || linked.Key == "" {
			continue
		}
		if ProjectOf(linked.Key) == project {
			continue
		}
		dep := Dependency{Key: linked.Key, LinkType: link.Type.Name}
		if linked.Fields != nil {
			dep.Summary = linked.Fields.Summary
			dep.Status = linked.Fields.Status.Name
		}
		out = append(out, dep)
	}
	return out
}

// Tracker reports meaningful changes on dependency issues.
type Tracker struct {
	Client TrackerClient
	Log    zerolog.Logger
}

// Changes describes what happened on a dependency since the cutoff, or
// nil. The issue's own updated timestamp gates the changelog scan: a stale
// issue yields nil even when old changelog batches remain in the payload.
// A failing dependency check must not sink the whole report, so fetch and
// parse errors also degrade to nil.
func (t *Tracker) Changes(ctx context.Context, key string, cutoff time.Time) []string {
	issue, err := t.Client.IssueWithChangelog(ctx, key)
	if err != nil {
		t.Log.Debug().Err(err).Str("issue", key).Msg("dependency fetch failed")
		return nil
	}
	updated, err := jira.ParseTime(issue.Fields.Updated)
	if err != nil || updated.Before(cutoff) {
		return nil
	}

	var lines []string
	if issue.Changelog != nil {
		for _, h := range issue.Changelog.Histories {
			at, err := jira.ParseTime(h.Created)
			if err != nil || at.Before(cutoff) {
				continue
			}
			for _, item := range h.Items {
				desc, ok := fieldDescriptions[strings.ToLower(item.Field)]
				if !ok {
					continue
				}
				lines = append(lines, fmt.Sprintf("%s: %s -> %s", desc, orNone(item.FromString), orNone(item.ToString)))
			}
		}
	}

	comments, err := t.Client.Comments(ctx, key)
	if err != nil {
		t.Log.Debug().Err(err).Str("issue", key).Msg("dependency comments fetch failed")
	} else {
		recent := 0
		for _, cm := range comments {
			at, err := jira.ParseTime(cm.Created)
			if err == nil && !at.Before(cutoff) {
				recent++
			}
		}
		if recent > 0 {
			lines = append(lines, fmt.Sprintf("%d new comment(s)", recent))
		}
	}
	return lines
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
