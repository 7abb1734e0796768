package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV renders the team listing as CSV rows of assignee, "key
// summary" and points. No statistics rows are emitted.
func WriteCSV(w io.Writer, l *TeamListing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Assignee", "Issue", "Points"}); err != nil {
		return err
	}
	for _, group := range l.Groups() {
		for _, issue := range group.Issues {
			points := ""
			if issue.Points != nil {
				points = formatPoints(*issue.Points)
			}
			if err := cw.Write([]string{group.Name, issue.Key + " " + issue.Summary, points}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
