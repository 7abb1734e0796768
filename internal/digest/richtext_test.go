package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const scmHost = "gitlab.example.com"

func textNode(text string) map[string]any {
	return map[string]any{"type": "text", "text": text}
}

func linkedTextNode(text, href string) map[string]any {
	return map[string]any{
		"type": "text",
		"text": text,
		"marks": []any{
			map[string]any{"type": "link", "attrs": map[string]any{"href": href}},
		},
	}
}

func paragraph(nodes ...any) map[string]any {
	return map[string]any{"type": "paragraph", "content": nodes}
}

func doc(blocks ...any) map[string]any {
	return map[string]any{"type": "doc", "content": blocks}
}

func TestFlattenBodyPlainString(t *testing.T) {
	text, link := FlattenBody("just a comment", scmHost)
	require.Equal(t, "just a comment", text)
	require.Empty(t, link)
}

func TestFlattenBodyDocument(t *testing.T) {
	body := doc(
		paragraph(textNode("see "), linkedTextNode("the MR", "https://gitlab.example.com/group/proj/-/merge_requests/42")),
		paragraph(textNode(" please")),
	)

	text, link := FlattenBody(body, scmHost)
	require.Equal(t, "see the MR please", text)
	require.Equal(t, "https://gitlab.example.com/group/proj/-/merge_requests/42", link)
}

func TestFlattenBodyIgnoresForeignLinks(t *testing.T) {
	tests := []struct {
		name string
		href string
	}{
		{name: "wrong host", href: "https://example.org/group/proj/-/merge_requests/42"},
		{name: "not a merge request path", href: "https://gitlab.example.com/group/proj/-/issues/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := doc(paragraph(linkedTextNode("link", tt.href)))
			text, link := FlattenBody(body, scmHost)
			require.Equal(t, "link", text)
			require.Empty(t, link)
		})
	}
}

func TestFlattenBodySkipsNonParagraphBlocks(t *testing.T) {
	body := doc(
		map[string]any{"type": "codeBlock", "content": []any{textNode("ignored")}},
		paragraph(textNode("kept")),
	)

	text, _ := FlattenBody(body, scmHost)
	require.Equal(t, "kept", text)
}

func TestFlattenBodyNeverPanicsOnMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "nil body", body: nil},
		{name: "no content key", body: map[string]any{"type": "doc"}},
		{name: "content not a list", body: map[string]any{"content": "oops"}},
		{name: "block not a map", body: doc("oops")},
		{name: "paragraph content not a list", body: doc(map[string]any{"type": "paragraph", "content": 7})},
		{name: "node missing text", body: doc(paragraph(map[string]any{"type": "text"}))},
		{name: "marks not a list", body: doc(paragraph(map[string]any{"type": "text", "text": "x", "marks": "y"}))},
		{name: "unexpected body type", body: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				FlattenBody(tt.body, scmHost)
			})
		})
	}
}
