// Package extract pulls structured artifacts (SQL, JSON route plans,
// multi-file code bundles) out of unstructured LLM text. Every extractor is
// an ordered chain of strategies tried in sequence; extraction never fails,
// it degrades to the documented fallback.
package extract

import (
	"regexp"
	"strings"
)

var (
	pythonFenceRe  = regexp.MustCompile("(?s)```python\\s*\\n(.*?)```")
	genericFenceRe = regexp.MustCompile("(?s)```\\s*\\n(.*?)```")
)

// Code unwraps a markdown code fence when one is present: a python-tagged
// fence first, then any untagged fence, else the trimmed original text.
func Code(content string) string {
	if m := pythonFenceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := genericFenceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}
