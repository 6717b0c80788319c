package extract

import (
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("(?m)^```[a-zA-Z0-9_]*[[:space:]]*$")
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headerRe     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s?`)
	hruleRe      = regexp.MustCompile(`(?m)^(\s*[-*_]){3,}\s*$`)
	emphasisRe   = regexp.MustCompile("(\\*{1,3}|_{1,3}|~~|`)")
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// MarkdownToText strips markdown syntax, keeping the readable text: link and
// image labels survive, fence markers, headers markers, emphasis and rules do
// not. Code block contents are kept as-is since they are still searchable.
func MarkdownToText(s string) string {
	s = fenceRe.ReplaceAllString(s, "")
	s = imageRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = headerRe.ReplaceAllString(s, "")
	s = blockquoteRe.ReplaceAllString(s, "")
	s = hruleRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
