package gitlab

import "strings"

// Stats summarizes a merge request for display.
type Stats struct {
	State        string
	Author       string
	FilesChanged int
	Additions    int
	Deletions    int
}

// DiffStats counts changed files and added/removed lines across a change
// listing. The +++/--- file header lines are not part of the tallies.
func DiffStats(changes *MRChanges) (files, additions, deletions int) {
	if changes == nil {
		return 0, 0, 0
	}
	for _, ch := range changes.Changes {
		files++
		for _, line := range strings.Split(ch.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			case strings.HasPrefix(line, "+"):
				additions++
			case strings.HasPrefix(line, "-"):
				deletions++
			}
		}
	}
	return files, additions, deletions
}
