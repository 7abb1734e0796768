package digest

import (
	"net/url"
	"strings"
)

// FlattenBody reduces a comment body to plain text. Jira API v3 returns
// Atlassian Document Format objects, v2 plain strings; both are accepted.
// Text nodes are concatenated in document order with no separators. The
// first hyperlink pointing at a merge request on scmHost is returned
// alongside the text. Missing or oddly typed nodes are skipped, never
// fatal.
func FlattenBody(body any, scmHost string) (text, mrLink string) {
	switch b := body.(type) {
	case string:
		return b, ""
	case map[string]any:
		var sb strings.Builder
		blocks, _ := b["content"].([]any)
		for _, block := range blocks {
			bm, ok := block.(map[string]any)
			if !ok || bm["type"] != "paragraph" {
				continue
			}
			nodes, _ := bm["content"].([]any)
			for _, node := range nodes {
				nm, ok := node.(map[string]any)
				if !ok || nm["type"] != "text" {
					continue
				}
				if s, ok := nm["text"].(string); ok {
					sb.WriteString(s)
				}
				if mrLink == "" {
					mrLink = linkMark(nm, scmHost)
				}
			}
		}
		return sb.String(), mrLink
	}
	return "", ""
}

func linkMark(node map[string]any, scmHost string) string {
	marks, _ := node["marks"].([]any)
	for _, mark := range marks {
		mm, ok := mark.(map[string]any)
		if !ok || mm["type"] != "link" {
			continue
		}
		attrs, _ := mm["attrs"].(map[string]any)
		href, _ := attrs["href"].(string)
		if href == "" {
			continue
		}
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		if u.Host == scmHost && strings.Contains(u.Path, "/merge_requests/") {
			return href
		}
	}
	return ""
}
