package personalization

import "strings"

// QueryIntent is the coarse classification of a suggestion query used
// to pick a response framework and tone.
type QueryIntent struct {
	IntentType   string
	ContextType  string
	UrgencyLevel string
}

// intentRules are checked in order; the first match wins, so meeting
// preparation outranks progress reporting when a query mentions both.
var intentRules = []struct {
	intent   string
	keywords []string
}{
	{"meeting_preparation", []string{"meeting", "one-on-one", "discuss", "prepare"}},
	{"progress_reporting", []string{"progress", "update", "accomplished", "completed"}},
	{"problem_solving", []string{"problem", "issue", "challenge", "stuck"}},
	{"skill_development", []string{"learn", "skill", "improve", "develop"}},
	{"career_growth", []string{"career", "promotion", "senior", "advancement"}},
}

// ClassifyIntent maps a query onto intent, context, and urgency axes
// using keyword matching. Classification is deliberately simple and
// deterministic; it steers prompt framing, not correctness.
func ClassifyIntent(query string) QueryIntent {
	q := strings.ToLower(query)

	intent := "general_advice"
	for _, rule := range intentRules {
		if containsAny(q, rule.keywords) {
			intent = rule.intent
			break
		}
	}

	contextType := "general_professional"
	switch {
	case containsAny(q, []string{"team", "colleague"}):
		contextType = "team_collaboration"
	case strings.Contains(q, "project"):
		contextType = "project_specific"
	case containsAny(q, []string{"technical", "code", "development"}):
		contextType = "technical_focus"
	}

	urgency := "normal"
	switch {
	case containsAny(q, []string{"tomorrow", "urgent", "asap", "immediately"}):
		urgency = "high"
	case containsAny(q, []string{"soon", "this week"}):
		urgency = "medium"
	}

	return QueryIntent{IntentType: intent, ContextType: contextType, UrgencyLevel: urgency}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
