package digest

import (
	"context"

	"github.com/Afrawles/sprintdigest/internal/jira"
)

const sprintPageSize = 50

// ResolveActiveSprint finds the active sprint on a board. Active sprints
// sit near the end of the chronological listing, so only the final page
// is scanned: a one-result probe yields the total, then a single page of
// sprintPageSize starting at max(0, total-sprintPageSize) is fetched. A
// nil sprint with a nil error means no sprint is active right now.
func ResolveActiveSprint(ctx context.Context, client TrackerClient, boardID int) (*jira.Sprint, error) {
	probe, err := client.Sprints(ctx, boardID, 0, 1)
	if err != nil {
		return nil, err
	}

	startAt := probe.Total - sprintPageSize
	if startAt < 0 {
		startAt = 0
	}

	page, err := client.Sprints(ctx, boardID, startAt, sprintPageSize)
	if err != nil {
		return nil, err
	}
	for i := range page.Values {
		if page.Values[i].State == "active" {
			return &page.Values[i], nil
		}
	}
	return nil, nil
}
