package report

import (
	"fmt"
	"sort"
	"strconv"
)

// Digest is the per-engineer stand-up report.
type Digest struct {
	SprintName string
	Engineers  []EngineerSection
	NeedToken  bool
}

type EngineerSection struct {
	DisplayName string
	Issues      []IssueEntry
}

type IssueEntry struct {
	Key          string
	Summary      string
	URL          string
	Points       *float64
	CommentLine  string
	Dependencies []DependencyEntry
}

type DependencyEntry struct {
	Key     string
	Summary string
	Status  string
	Changes []string
}

// TeamListing is the flat sprint listing used by the list, csv and xlsx
// modes.
type TeamListing struct {
	SprintName string
	Issues     []TeamIssue
}

type TeamIssue struct {
	Assignee string
	Key      string
	Summary  string
	Status   string
	Points   *float64
}

type Group struct {
	Name   string
	Issues []TeamIssue
}

// Groups buckets issues by assignee display name, alphabetical with the
// unassigned bucket last.
func (l *TeamListing) Groups() []Group {
	byName := make(map[string][]TeamIssue)
	for _, issue := range l.Issues {
		byName[issue.Assignee] = append(byName[issue.Assignee], issue)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := byName[""]; ok {
		names = append(names, "")
	}

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		label := name
		if label == "" {
			label = "Unassigned"
		}
		groups = append(groups, Group{Name: label, Issues: byName[name]})
	}
	return groups
}

type StatusCount struct {
	Status string
	Count  int
}

type Statistics struct {
	TotalIssues  int
	TotalPoints  float64
	StatusCounts []StatusCount
}

// Stats summarizes the listing: status counts sorted by descending count
// with alphabetical tie-break, plus the story point total.
func (l *TeamListing) Stats() Statistics {
	counts := make(map[string]int)
	stats := Statistics{TotalIssues: len(l.Issues)}
	for _, issue := range l.Issues {
		counts[issue.Status]++
		if issue.Points != nil {
			stats.TotalPoints += *issue.Points
		}
	}
	for status, n := range counts {
		stats.StatusCounts = append(stats.StatusCounts, StatusCount{Status: status, Count: n})
	}
	sort.Slice(stats.StatusCounts, func(i, j int) bool {
		if stats.StatusCounts[i].Count != stats.StatusCounts[j].Count {
			return stats.StatusCounts[i].Count > stats.StatusCounts[j].Count
		}
		return stats.StatusCounts[i].Status < stats.StatusCounts[j].Status
	})
	return stats
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func pointsSuffix(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf(" (%s pts)", formatPoints(*p))
}
