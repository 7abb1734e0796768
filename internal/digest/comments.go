package digest

import (
	"sort"
	"time"

	"github.com/Afrawles/sprintdigest/internal/jira"
)

// MostRecentComment selects the newest comment created on or after the
// cutoff, or nil when nothing recent exists. Comments whose timestamps
// fail to parse are skipped. Equal timestamps keep the original listing
// order.
func MostRecentComment(comments []jira.Comment, cutoff time.Time) *jira.Comment {
	type candidate struct {
		idx int
		at  time.Time
	}
	var kept []candidate
	for i, cm := range comments {
		at, err := jira.ParseTime(cm.Created)
		if err != nil {
			continue
		}
		if !at.Before(cutoff) {
			kept = append(kept, candidate{idx: i, at: at})
		}
	}
	if len(kept) == 0 {
		return nil
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].at.After(kept[j].at)
	})
	return &comments[kept[0].idx]
}
