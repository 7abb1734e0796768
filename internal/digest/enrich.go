package digest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Afrawles/sprintdigest/internal/gitlab"
)

// Bot comments announce merge requests in free text; these two phrases
// are the only stable anchors in them.
var (
	mrProjectRe = regexp.MustCompile(`merge request of (\S+) on branch`)
	mrBranchRe  = regexp.MustCompile(`on branch ([^\s:]+):`)
)

// MRIdentity is the merge request identity parsed out of a bot comment.
type MRIdentity struct {
	Project     string
	Branch      string
	URL         string
	ProjectPath string
	IID         int
}

// HasURL reports whether a usable API address was recovered from the
// comment's embedded link.
func (id *MRIdentity) HasURL() bool { return id.ProjectPath != "" && id.IID > 0 }

// IsBotMRComment reports whether a comment was left by the integration
// bot and mentions a merge request. Both checks are case-insensitive.
func IsBotMRComment(author, text, botMarker string) bool {
	return strings.Contains(strings.ToLower(author), strings.ToLower(botMarker)) &&
		strings.Contains(strings.ToLower(text), "merge request")
}

// ParseBotComment extracts the merge request identity from a bot comment.
// Both the project and branch phrases must match, otherwise the identity
// is unparsed and ok is false.
func ParseBotComment(text, mrURL string) (MRIdentity, bool) {
	pm := mrProjectRe.FindStringSubmatch(text)
	bm := mrBranchRe.FindStringSubmatch(text)
	if pm == nil || bm == nil {
		return MRIdentity{}, false
	}
	id := MRIdentity{Project: pm[1], Branch: bm[1], URL: mrURL}
	if mrURL != "" {
		id.ProjectPath, id.IID = ParseMRURL(mrURL)
	}
	return id, true
}

// ParseMRURL splits a GitLab merge request URL into the project path and
// the MR number, using the /-/merge_requests/ path marker. Malformed URLs
// yield zero values.
func ParseMRURL(raw string) (string, int) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", 0
	}
	const marker = "/-/merge_requests/"
	i := strings.Index(u.Path, marker)
	if i < 0 {
		return "", 0
	}
	project := strings.Trim(u.Path[:i], "/")
	rest := u.Path[i+len(marker):]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	iid, err := strconv.Atoi(rest)
	if err != nil || project == "" || iid <= 0 {
		return "", 0
	}
	return project, iid
}

// Enricher renders merge request bot comments, annotated with live
// statistics when the source control API cooperates.
type Enricher struct {
	Client SCMClient
	Log    zerolog.Logger
}

// Describe formats a bot comment that mentions a merge request. The bool
// return asks the caller to surface the access token hint: statistics
// were withheld for lack of credentials (401, or 404 with no token
// configured). Other API failures degrade silently to the identity-only
// format.
func (e *Enricher) Describe(ctx context.Context, text, mrURL string) (string, bool) {
	id, ok := ParseBotComment(text, mrURL)
	if !ok {
		return "merge request mentioned", false
	}
	if !id.HasURL() {
		return fmt.Sprintf("MR %s @ %s", id.Branch, id.Project), false
	}

	stats, err := e.stats(ctx, id.ProjectPath, id.IID)
	if err != nil {
		needToken := errors.Is(err, gitlab.ErrAuthRequired) ||
			(errors.Is(err, gitlab.ErrNotFound) && !e.Client.HasToken())
		if !needToken {
			e.Log.Debug().Err(err).Str("mr", id.URL).Msg("merge request stats unavailable")
		}
		return fmt.Sprintf("MR %s @ %s (%s)", id.Branch, id.Project, id.URL), needToken
	}
	return fmt.Sprintf("MR %s @ %s [%s, %d files, +%d/-%d] (%s)",
		id.Branch, id.Project, stats.State, stats.FilesChanged, stats.Additions, stats.Deletions, id.URL), false
}

func (e *Enricher) stats(ctx context.Context, projectPath string, iid int) (*gitlab.Stats, error) {
	mr, err := e.Client.MergeRequest(ctx, projectPath, iid)
	if err != nil {
		return nil, err
	}
	changes, err := e.Client.MergeRequestChanges(ctx, projectPath, iid)
	if err != nil {
		return nil, err
	}
	files, additions, deletions := gitlab.DiffStats(changes)
	return &gitlab.Stats{
		State:        mr.State,
		Author:       mr.Author.Name,
		FilesChanged: files,
		Additions:    additions,
		Deletions:    deletions,
	}, nil
}
