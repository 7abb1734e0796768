package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Afrawles/sprintdigest/internal/config"
	"github.com/Afrawles/sprintdigest/internal/jira"
	"github.com/Afrawles/sprintdigest/internal/report"
)

// Engine wires the collectors, filters and enrichers into report input.
// Everything runs sequentially; a primary fetch failure aborts the run
// while enrichment failures degrade item by item.
type Engine struct {
	Tracker TrackerClient
	SCM     SCMClient
	Cfg     *config.Config
	Log     zerolog.Logger
	Now     func() time.Time
}

func New(tracker TrackerClient, scm SCMClient, cfg *config.Config, log zerolog.Logger) *Engine {
	return &Engine{Tracker: tracker, SCM: scm, Cfg: cfg, Log: log, Now: time.Now}
}

func (e *Engine) collector() *Collector {
	return &Collector{
		Client:      e.Tracker,
		Project:     e.Cfg.ProjectKey,
		RecentDays:  e.Cfg.RecentDays,
		PointFields: e.Cfg.StoryPointFields,
	}
}

// ActiveSprint resolves the sprint the report covers, nil when none is
// active.
func (e *Engine) ActiveSprint(ctx context.Context) (*jira.Sprint, error) {
	return ResolveActiveSprint(ctx, e.Tracker, e.Cfg.BoardID)
}

// BuildDigest assembles the per-engineer stand-up digest for the sprint.
func (e *Engine) BuildDigest(ctx context.Context, sprint *jira.Sprint) (*report.Digest, error) {
	cutoff := Cutoff(NaiveUTC(e.Now()))
	collector := e.collector()
	tracker := &Tracker{Client: e.Tracker, Log: e.Log}
	enricher := &Enricher{Client: e.SCM, Log: e.Log}

	d := &report.Digest{SprintName: sprint.Name}
	for _, eng := range e.Cfg.Engineers {
		issues, err := collector.ForEngineer(ctx, eng.Assignee, sprint.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching issues for %s: %w", eng.DisplayName, err)
		}

		section := report.EngineerSection{DisplayName: eng.DisplayName}
		for i := range issues {
			issue := &issues[i]
			entry := report.IssueEntry{
				Key:     issue.Key,
				Summary: issue.Fields.Summary,
				URL:     e.Cfg.JiraBaseURL + "/browse/" + issue.Key,
				Points:  collector.StoryPoints(issue),
			}

			comments, err := e.Tracker.Comments(ctx, issue.Key)
			if err != nil {
				return nil, fmt.Errorf("fetching comments for %s: %w", issue.Key, err)
			}
			if latest := MostRecentComment(comments, cutoff); latest != nil {
				entry.CommentLine = e.commentLine(ctx, enricher, latest, &d.NeedToken)
			}

			for _, dep := range CrossTeamDependencies(issue, e.Cfg.ProjectKey) {
				entry.Dependencies = append(entry.Dependencies, report.DependencyEntry{
					Key:     dep.Key,
					Summary: dep.Summary,
					Status:  dep.Status,
					Changes: tracker.Changes(ctx, dep.Key, cutoff),
				})
			}
			section.Issues = append(section.Issues, entry)
		}
		d.Engineers = append(d.Engineers, section)
	}
	return d, nil
}

// commentLine formats the selected comment, routing bot merge request
// announcements through the enricher and everything else through plain
// text extraction.
func (e *Engine) commentLine(ctx context.Context, enricher *Enricher, cm *jira.Comment, needToken *bool) string {
	text, link := FlattenBody(cm.Body, e.Cfg.GitLabHost())
	if IsBotMRComment(cm.Author.DisplayName, text, e.Cfg.BotMarker) {
		line, hint := enricher.Describe(ctx, text, link)
		if hint {
			*needToken = true
		}
		return fmt.Sprintf("%s: %s", cm.Author.DisplayName, line)
	}
	return fmt.Sprintf("%s: %s", cm.Author.DisplayName, text)
}

// BuildTeamListing assembles the flat sprint listing for the list, csv
// and xlsx modes.
func (e *Engine) BuildTeamListing(ctx context.Context, sprint *jira.Sprint) (*report.TeamListing, error) {
	collector := e.collector()
	issues, err := collector.ForSprint(ctx, sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching sprint issues: %w", err)
	}

	listing := &report.TeamListing{SprintName: sprint.Name}
	for i := range issues {
		issue := &issues[i]
		assignee := ""
		if issue.Fields.Assignee != nil {
			assignee = issue.Fields.Assignee.DisplayName
		}
		listing.Issues = append(listing.Issues, report.TeamIssue{
			Assignee: assignee,
			Key:      issue.Key,
			Summary:  issue.Fields.Summary,
			Status:   issue.Fields.Status.Name,
			Points:   collector.StoryPoints(issue),
		})
	}
	return listing, nil
}
