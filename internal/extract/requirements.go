package extract

import (
	"regexp"
	"strings"
)

// DefaultRequirements is written when the generator did not emit a
// requirements block of its own.
const DefaultRequirements = "fastapi>=0.104.0\nuvicorn[standard]>=0.24.0\npydantic>=2.5.0\npytest>=7.0.0\n"

var (
	requirementsFenceRe = regexp.MustCompile("(?s)```(?:txt)?:?requirements\\.txt\\s*\\n(.*?)```")
	txtFenceRe          = regexp.MustCompile("(?si)```txt\\s*\\n(.*?requirements.*?)\\n```")

	stripTaggedReqRe = regexp.MustCompile("(?s)```txt:requirements\\.txt\\s*\\n(.*?)\\n```")
	stripBareReqRe   = regexp.MustCompile("(?s)```:requirements\\.txt\\s*\\n(.*?)\\n```")
)

// Requirements extracts a requirements.txt body from LLM output, falling
// back to DefaultRequirements when no tagged block is present.
func Requirements(output string) string {
	if m := requirementsFenceRe.FindStringSubmatch(output); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := txtFenceRe.FindStringSubmatch(output); m != nil {
		if strings.Contains(strings.ToLower(m[1]), "requirements") {
			return strings.TrimSpace(m[1])
		}
	}
	return DefaultRequirements
}

// StripRequirements removes requirements.txt fenced blocks from generated
// source so the remaining text is clean backend code.
func StripRequirements(output string) string {
	out := stripTaggedReqRe.ReplaceAllString(output, "")
	out = stripBareReqRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
