// Package personalization maintains the enhanced user context: learned
// preferences, projects, goals, and interaction history layered on top
// of the static profile. The context shapes every prompt the assistant
// sends and is updated after each suggestion round.
package personalization

import (
	"strings"

	"github.com/k61b/logswise-cli/internal/config"
)

// maxRecentTopics caps the topic history so the stored context stays
// small and old topics age out.
const maxRecentTopics = 10

// UserContext is the persisted personalization state.
type UserContext struct {
	Preferences        Preferences        `json:"preferences"`
	ActivityPatterns   ActivityPatterns   `json:"activity_patterns"`
	LearningStyle      LearningStyle      `json:"learning_style"`
	CurrentProjects    []ProjectContext   `json:"current_projects"`
	Goals              []Goal             `json:"goals"`
	InteractionHistory InteractionHistory `json:"interaction_history"`
}

// Preferences captures how and when the user wants suggestions.
type Preferences struct {
	SuggestionTypes    []string `json:"suggestion_types"`
	CommunicationStyle string   `json:"communication_style"`
	Frequency          string   `json:"frequency"`
	TimeOfDay          []string `json:"time_of_day"`
	FocusAreas         []string `json:"focus_areas"`
}

// ActivityPatterns describes observed usage rhythms.
type ActivityPatterns struct {
	MostActiveTimes        []string `json:"most_active_times"`
	NoteTakingFrequency    string   `json:"note_taking_frequency"`
	CommonTopics           []string `json:"common_topics"`
	CollaborationFrequency string   `json:"collaboration_frequency"`
	LearningPace           string   `json:"learning_pace"`
}

// LearningStyle describes how the user prefers to absorb material.
type LearningStyle struct {
	PreferredFormat      string `json:"preferred_format"`
	ComplexityPreference string `json:"complexity_preference"`
	FeedbackPreference   string `json:"feedback_preference"`
}

// ProjectContext is one documented active project.
type ProjectContext struct {
	Name              string   `json:"name"`
	TechStack         []string `json:"tech_stack"`
	CurrentChallenges []string `json:"current_challenges"`
	TeamSize          int      `json:"team_size"`
	DeadlinePressure  string   `json:"deadline_pressure"`
}

// Goal is a tracked development goal with progress in [0, 1].
type Goal struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Timeline    string  `json:"timeline"`
	Progress    float32 `json:"progress"`
}

// InteractionHistory aggregates feedback across suggestion rounds.
type InteractionHistory struct {
	SuggestionAcceptanceRate float32            `json:"suggestion_acceptance_rate"`
	MostEngagedCategories    []string           `json:"most_engaged_categories"`
	RecentTopics             []string           `json:"recent_topics"`
	FeedbackPatterns         map[string]float32 `json:"feedback_patterns"`
}

// FromProfile derives an initial context from the static profile.
// Inference is heuristic: profession and seniority pick sensible
// defaults that the user refines through feedback over time.
func FromProfile(p config.Profile) *UserContext {
	profession := strings.ToLower(p.Profession)
	experience := p.YearsExperience

	style := "balanced"
	focus := []string{"professional growth"}
	switch {
	case strings.Contains(profession, "manager") || strings.Contains(profession, "lead"):
		style = "detailed"
		focus = []string{"leadership", "team collaboration"}
	case strings.Contains(profession, "developer"):
		style = "concise"
		focus = []string{"technical skills", "code quality"}
	}

	format := "reading"
	if strings.Contains(profession, "developer") {
		format = "hands_on"
	}

	complexity := "intermediate"
	switch {
	case strings.Contains(experience, "Senior") || strings.Contains(experience, "Lead"):
		complexity = "advanced"
	case strings.Contains(experience, "Junior"):
		complexity = "beginner"
	}

	return &UserContext{
		Preferences: Preferences{
			SuggestionTypes:    []string{"learning", "productivity"},
			CommunicationStyle: style,
			Frequency:          "weekly",
			TimeOfDay:          []string{"morning"},
			FocusAreas:         focus,
		},
		ActivityPatterns: ActivityPatterns{
			MostActiveTimes:        []string{"morning"},
			NoteTakingFrequency:    "moderate",
			CollaborationFrequency: "moderate",
			LearningPace:           "moderate",
		},
		LearningStyle: LearningStyle{
			PreferredFormat:      format,
			ComplexityPreference: complexity,
			FeedbackPreference:   "periodic",
		},
		InteractionHistory: InteractionHistory{
			FeedbackPatterns: map[string]float32{},
		},
	}
}

// RecordInteraction folds one round of feedback into the history.
// Acceptance rate and per-category satisfaction are exponential moving
// averages, so recent feedback dominates without discarding the past.
func (c *UserContext) RecordInteraction(category string, accepted bool, satisfaction float32) {
	rate := c.InteractionHistory.SuggestionAcceptanceRate * 0.9
	if accepted {
		rate += 0.1
	}
	c.InteractionHistory.SuggestionAcceptanceRate = rate

	if c.InteractionHistory.FeedbackPatterns == nil {
		c.InteractionHistory.FeedbackPatterns = map[string]float32{}
	}
	if prev, ok := c.InteractionHistory.FeedbackPatterns[category]; ok {
		c.InteractionHistory.FeedbackPatterns[category] = prev*0.8 + satisfaction*0.2
	} else {
		c.InteractionHistory.FeedbackPatterns[category] = satisfaction
	}

	if satisfaction > 0.7 && !contains(c.InteractionHistory.MostEngagedCategories, category) {
		c.InteractionHistory.MostEngagedCategories = append(c.InteractionHistory.MostEngagedCategories, category)
	}
}

// PushTopic appends a topic label, evicting the oldest past the cap.
// Only coarse labels are stored, never query text, so the history can
// not feed fabricated specifics back into prompts.
func (c *UserContext) PushTopic(topic string) {
	c.InteractionHistory.RecentTopics = append(c.InteractionHistory.RecentTopics, topic)
	if n := len(c.InteractionHistory.RecentTopics); n > maxRecentTopics {
		c.InteractionHistory.RecentTopics = c.InteractionHistory.RecentTopics[n-maxRecentTopics:]
	}
}

// AddGoal registers a new goal at zero progress.
func (c *UserContext) AddGoal(description, category, timeline string) {
	c.Goals = append(c.Goals, Goal{
		Description: description,
		Category:    category,
		Timeline:    timeline,
	})
}

// AddProject registers an active project.
func (c *UserContext) AddProject(p ProjectContext) {
	c.CurrentProjects = append(c.CurrentProjects, p)
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
