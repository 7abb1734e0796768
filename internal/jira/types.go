package jira

import (
	"encoding/json"
	"time"
)

// Sprint is one entry of the agile board sprint listing.
type Sprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// SprintPage is one page of a board's sprint listing.
type SprintPage struct {
	MaxResults int      `json:"maxResults"`
	StartAt    int      `json:"startAt"`
	Total      int      `json:"total"`
	Values     []Sprint `json:"values"`
}

type User struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type Status struct {
	Name string `json:"name"`
}

type LinkType struct {
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

// LinkedIssue is the issue payload embedded inside an issue link. The
// fields object carries a reduced field set compared to a full fetch.
type LinkedIssue struct {
	Key    string      `json:"key"`
	Fields *LinkFields `json:"fields"`
}

type LinkFields struct {
	Summary string `json:"summary"`
	Status  Status `json:"status"`
}

type IssueLink struct {
	Type         LinkType     `json:"type"`
	InwardIssue  *LinkedIssue `json:"inwardIssue"`
	OutwardIssue *LinkedIssue `json:"outwardIssue"`
}

// IssueFields keeps the typed fields the digest reads plus the raw field
// map so custom fields (story point estimates) can be probed by ID.
type IssueFields struct {
	Summary    string      `json:"summary"`
	Status     Status      `json:"status"`
	Assignee   *User       `json:"assignee"`
	Updated    string      `json:"updated"`
	IssueLinks []IssueLink `json:"issuelinks"`

	raw map[string]json.RawMessage
}

func (f *IssueFields) UnmarshalJSON(b []byte) error {
	type fields IssueFields
	var ff fields
	if err := json.Unmarshal(b, &ff); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*f = IssueFields(ff)
	f.raw = raw
	return nil
}

// Number returns the numeric value of a field by ID. The second return is
// false when the field is absent, null or not numeric.
func (f *IssueFields) Number(id string) (float64, bool) {
	rawVal, ok := f.raw[id]
	if !ok {
		return 0, false
	}
	var n *float64
	if err := json.Unmarshal(rawVal, &n); err != nil || n == nil {
		return 0, false
	}
	return *n, true
}

type Issue struct {
	Key       string      `json:"key"`
	Fields    IssueFields `json:"fields"`
	Changelog *Changelog  `json:"changelog"`
}

type Changelog struct {
	Histories []History `json:"histories"`
}

// History is one changelog batch: every field mutated in a single edit.
type History struct {
	Created string          `json:"created"`
	Items   []ChangelogItem `json:"items"`
}

type ChangelogItem struct {
	Field      string `json:"field"`
	FromString string `json:"fromString"`
	ToString   string `json:"toString"`
}

// Comment carries the body as `any`: API v3 returns an Atlassian document
// object, v2 a plain string.
type Comment struct {
	Author  User   `json:"author"`
	Created string `json:"created"`
	Body    any    `json:"body"`
}

// ParseTime interprets a Jira timestamp as naive UTC. The zone offset is
// stripped before parsing so comparisons stay consistent across
// mixed-offset payloads.
func ParseTime(s string) (time.Time, error) {
	if len(s) > 19 {
		s = s[:19]
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
}
