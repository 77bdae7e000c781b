package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/amansingh-swe/EngAi/internal/domain"
)

var (
	jsonFenceRe    = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")
	loosePlanRe    = regexp.MustCompile(`(?s)\{[\s\n]*"api_route_plan"[\s\S]*?\}`)
	smallObjectRe  = regexp.MustCompile(`(?s)\{[^{}]*"(?:base_url|routes)"[^{}]*\}`)
	trailingJSONRe = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
)

type routePlanStrategy func(string) (domain.RoutePlan, bool)

// routePlanStrategies are tried in order. Failure of every strategy yields an
// empty plan, which downstream steps tolerate.
var routePlanStrategies = []routePlanStrategy{
	fencedPlanKey,
	fencedPlanShape,
	loosePlanKey,
	smallPlanObject,
	trailingPlan,
}

// RoutePlan extracts an API route plan from LLM output. It never fails: when
// no strategy matches, the result is an empty plan.
func RoutePlan(output string) domain.RoutePlan {
	for _, strategy := range routePlanStrategies {
		if plan, ok := strategy(output); ok {
			return plan
		}
	}
	return domain.RoutePlan{}
}

// fencedPlanKey looks for a json fence whose object carries "api_route_plan"
// and returns that key's value.
func fencedPlanKey(output string) (domain.RoutePlan, bool) {
	for _, m := range jsonFenceRe.FindAllStringSubmatch(output, -1) {
		doc, err := parseObject(m[1])
		if err != nil {
			continue
		}
		if plan, ok := planValue(doc); ok {
			return plan, true
		}
	}
	return nil, false
}

// fencedPlanShape looks for a json fence whose object itself has the plan
// shape (a base_url or routes key).
func fencedPlanShape(output string) (domain.RoutePlan, bool) {
	for _, m := range jsonFenceRe.FindAllStringSubmatch(output, -1) {
		doc, err := parseObject(m[1])
		if err != nil {
			continue
		}
		if hasPlanShape(doc) {
			return domain.RoutePlan(doc), true
		}
	}
	return nil, false
}

// loosePlanKey matches an unfenced object containing the literal
// "api_route_plan" key.
func loosePlanKey(output string) (domain.RoutePlan, bool) {
	for _, m := range loosePlanRe.FindAllString(output, -1) {
		doc, err := parseObject(m)
		if err != nil {
			continue
		}
		if plan, ok := planValue(doc); ok {
			return plan, true
		}
	}
	return nil, false
}

// smallPlanObject matches any small brace-balanced object mentioning
// base_url or routes anywhere in the text.
func smallPlanObject(output string) (domain.RoutePlan, bool) {
	for _, m := range smallObjectRe.FindAllString(output, -1) {
		doc, err := parseObject(m)
		if err != nil {
			continue
		}
		if hasPlanShape(doc) {
			return domain.RoutePlan(doc), true
		}
	}
	return nil, false
}

// trailingPlan scans from the last line that opens a JSON section to the end
// of the text; generated plans often appear last.
func trailingPlan(output string) (domain.RoutePlan, bool) {
	lines := strings.Split(output, "\n")
	start := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], "```json") ||
			(strings.Contains(lines[i], "{") && strings.Contains(lines[i], `"api_route_plan"`)) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}
	tail := strings.Join(lines[start:], "\n")
	m := trailingJSONRe.FindString(tail)
	if m == "" {
		return nil, false
	}
	doc, err := parseObject(m)
	if err != nil {
		return nil, false
	}
	if plan, ok := planValue(doc); ok {
		return plan, true
	}
	if hasPlanShape(doc) {
		return domain.RoutePlan(doc), true
	}
	return nil, false
}

func parseObject(s string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func planValue(doc map[string]any) (domain.RoutePlan, bool) {
	nested, ok := doc["api_route_plan"].(map[string]any)
	if !ok {
		return nil, false
	}
	return domain.RoutePlan(nested), true
}

func hasPlanShape(doc map[string]any) bool {
	_, hasBase := doc["base_url"]
	_, hasRoutes := doc["routes"]
	return hasBase || hasRoutes
}
