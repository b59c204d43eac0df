package service

import (
	"crypto/rand"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// 按顺序剥离 Markdown 语法，得到用于摘要与阅读时长的纯文本。
var (
	headingPattern      = regexp.MustCompile(`#{1,6}\s?`)
	boldPattern         = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern       = regexp.MustCompile(`\*(.*?)\*`)
	linkPattern         = regexp.MustCompile(`\[(.*?)\]\((?:.*?)\)`)
	codeFencePattern    = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern   = regexp.MustCompile("`(.*?)`")
	blockquotePattern   = regexp.MustCompile(`>\s?(.*)`)
	listItemPattern     = regexp.MustCompile(`- (.*)`)
	numberedItemPattern = regexp.MustCompile(`\d+\. (.*)`)
	htmlTagPattern      = regexp.MustCompile(`</?[^>]+(>|$)`)
)

const (
	excerptMaxLen   = 150
	wordsPerMinute  = 225
	slugSuffixLen   = 6
	slugSuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// StripMarkdown removes markdown formatting and returns plain text.
func StripMarkdown(content string) string {
	plain := headingPattern.ReplaceAllString(content, "")
	plain = boldPattern.ReplaceAllString(plain, "$1")
	plain = italicPattern.ReplaceAllString(plain, "$1")
	plain = linkPattern.ReplaceAllString(plain, "$1")
	plain = codeFencePattern.ReplaceAllString(plain, "")
	plain = inlineCodePattern.ReplaceAllString(plain, "$1")
	plain = blockquotePattern.ReplaceAllString(plain, "$1")
	plain = listItemPattern.ReplaceAllString(plain, "$1")
	plain = numberedItemPattern.ReplaceAllString(plain, "$1")
	plain = htmlTagPattern.ReplaceAllString(plain, "")
	return strings.TrimSpace(plain)
}

// ExcerptFromContent derives a short plain-text excerpt from markdown content,
// truncated to 150 characters with an ellipsis when longer.
func ExcerptFromContent(content string) string {
	plain := StripMarkdown(content)
	runes := []rune(plain)
	if len(runes) > excerptMaxLen {
		return string(runes[:excerptMaxLen]) + "..."
	}
	return plain
}

// CalculateReadTime estimates reading time from the word count of the
// stripped text at 225 words per minute, rendered as "N min read".
func CalculateReadTime(content string) string {
	words := len(strings.Fields(StripMarkdown(content)))
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	return fmt.Sprintf("%d min read", minutes)
}

var (
	slugInvalidPattern    = regexp.MustCompile(`[^\w\s]`)
	slugWhitespacePattern = regexp.MustCompile(`\s+`)
)

// GenerateSlug derives a URL-safe slug from the title and appends a short
// random token so slugs stay unique without coordination.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidPattern.ReplaceAllString(slug, "")
	slug = slugWhitespacePattern.ReplaceAllString(slug, "-")
	return fmt.Sprintf("%s-%s", slug, randomSlugSuffix())
}

func randomSlugSuffix() string {
	buf := make([]byte, slugSuffixLen)
	// crypto/rand.Read 只在系统熵源不可用时失败，此时保留零值下标。
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = slugSuffixChars[int(b)%len(slugSuffixChars)]
	}
	return string(buf)
}
