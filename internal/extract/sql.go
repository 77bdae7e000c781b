package extract

import (
	"regexp"
	"strings"
)

var (
	sqlFenceRe    = regexp.MustCompile("(?s)```sql\\s*\\n(.*?)```")
	createTableRe = regexp.MustCompile(`(?is)(CREATE TABLE[^;]+(?:;|$))`)
)

// sqlStrategies are tried in order; the first hit wins.
var sqlStrategies = []func(string) (string, bool){
	sqlFence,
	createTableScan,
}

// SQL extracts a SQL schema from LLM output: a sql-tagged fence first, then
// all CREATE TABLE statements joined, else the trimmed raw text.
func SQL(output string) string {
	for _, strategy := range sqlStrategies {
		if sql, ok := strategy(output); ok {
			return sql
		}
	}
	return strings.TrimSpace(output)
}

func sqlFence(output string) (string, bool) {
	m := sqlFenceRe.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func createTableScan(output string) (string, bool) {
	matches := createTableRe.FindAllString(output, -1)
	if len(matches) == 0 {
		return "", false
	}
	for i, m := range matches {
		matches[i] = strings.TrimSpace(m)
	}
	return strings.Join(matches, "\n\n"), true
}
