package personalization

import (
	"fmt"
	"strings"

	"github.com/k61b/logswise-cli/internal/config"
)

// PromptContext renders the full context block sent ahead of a
// suggestion query: system framing, the user profile, projects, goals,
// interaction patterns, ranked notes, and a framework matched to the
// query's intent. Recent topic labels are deliberately left out so the
// model cannot echo them back as invented history.
func (c *UserContext) PromptContext(profile config.Profile, query string, relevantNotes []string) string {
	var b strings.Builder

	b.WriteString("=== SYSTEM INSTRUCTIONS ===\n")
	b.WriteString("You are an AI assistant specializing in personalized professional development.\n")
	b.WriteString("Your role: Provide contextual, actionable advice based on verified user data.\n\n")

	b.WriteString("REASONING FRAMEWORK:\n")
	b.WriteString("1. ANALYZE: Understand the intent behind the query\n")
	b.WriteString("2. CONTEXTUALIZE: Map query to relevant user projects/goals\n")
	b.WriteString("3. SYNTHESIZE: Generate specific, actionable suggestions\n")
	b.WriteString("4. VALIDATE: Ensure all advice is grounded in verified data\n\n")

	b.WriteString("CRITICAL CONSTRAINTS:\n")
	b.WriteString("- NEVER invent relationships, conversations, or commitments\n")
	b.WriteString("- Focus on SITUATION and TOPIC, not on people mentioned\n")
	b.WriteString("- Use conversation context as INPUT TYPE (meeting prep, progress update, etc.)\n")
	b.WriteString("- Ground ALL suggestions in documented projects, challenges, and goals\n")
	b.WriteString("- Provide MEASURABLE and TIME-BOUND recommendations when possible\n\n")

	c.writeProfileSection(&b, profile)
	c.writeProjectSection(&b)
	c.writeGoalSection(&b)

	fmt.Fprintf(&b, "=== INTERACTION PATTERNS ===\n"+
		"Suggestion Acceptance Rate: %.1f%%\n"+
		"Most Engaged Categories: %s\n"+
		"Activity Level: %d suggestion interactions\n\n",
		c.InteractionHistory.SuggestionAcceptanceRate*100,
		strings.Join(c.InteractionHistory.MostEngagedCategories, ", "),
		len(c.InteractionHistory.RecentTopics))

	intent := ClassifyIntent(query)
	b.WriteString("=== QUERY ANALYSIS ===\n")
	fmt.Fprintf(&b, "Request: %q\n", query)
	fmt.Fprintf(&b, "Intent: %s\n", intent.IntentType)
	fmt.Fprintf(&b, "Context: %s\n", intent.ContextType)
	fmt.Fprintf(&b, "Priority: %s\n\n", intent.UrgencyLevel)

	if len(relevantNotes) > 0 {
		b.WriteString("=== CONTEXTUAL KNOWLEDGE BASE ===\n")
		for i, note := range relevantNotes {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, relevanceBand(i), note)
		}
		b.WriteByte('\n')
	}

	b.WriteString("=== RESPONSE FRAMEWORK ===\n")
	b.WriteString("Structure your response using this framework:\n\n")
	writeIntentFramework(&b, intent.IntentType)

	b.WriteString("\nPROFESSIONAL EXCELLENCE STANDARDS:\n")
	b.WriteString("- Provide SPECIFIC, time-bound recommendations\n")
	b.WriteString("- Include SUCCESS METRICS for each suggestion\n")
	b.WriteString("- Consider STAKEHOLDER IMPACT and team dynamics\n")
	b.WriteString("- Balance SHORT-TERM wins with LONG-TERM strategy\n")
	b.WriteString("- Suggest FOLLOW-UP mechanisms for accountability\n\n")

	return b.String()
}

func (c *UserContext) writeProfileSection(b *strings.Builder, profile config.Profile) {
	careerTarget := "grow professionally"
	if len(c.Goals) > 0 {
		careerTarget = c.Goals[0].Description
	}

	fmt.Fprintf(b, "=== USER CONTEXT PROFILE ===\n"+
		"PROFESSIONAL IDENTITY:\n"+
		"Role: %s | Experience Level: %s | Domain: %s\n"+
		"Organization: %s (%s employees) | Work Style: %s\n"+
		"Tech Stack: %s | Career Stage: Aiming to %s\n\n"+
		"COGNITIVE PREFERENCES:\n"+
		"Communication: %s | Learning: %s (complexity: %s)\n"+
		"Decision Making: %s feedback loops | Active Times: %s\n"+
		"Learning Velocity: %s | Focus Areas: %s\n\n",
		orDefault(profile.Profession, "Professional"),
		orDefault(profile.YearsExperience, "Not specified"),
		orDefault(profile.PreferredLanguage, "Multi-tech"),
		orDefault(profile.CompanyName, "Current Organization"),
		orDefault(profile.CompanySize, "Unknown size"),
		orDefault(profile.WorkMode, "Flexible"),
		orDefault(profile.PreferredLanguage, "Various"),
		careerTarget,
		c.Preferences.CommunicationStyle,
		c.LearningStyle.PreferredFormat,
		c.LearningStyle.ComplexityPreference,
		c.LearningStyle.FeedbackPreference,
		strings.Join(c.ActivityPatterns.MostActiveTimes, ", "),
		c.ActivityPatterns.LearningPace,
		strings.Join(c.Preferences.FocusAreas, " + "))
}

func (c *UserContext) writeProjectSection(b *strings.Builder) {
	if len(c.CurrentProjects) == 0 {
		b.WriteString("=== PROJECT PORTFOLIO ===\n")
		b.WriteString("No specific projects documented. Opportunity to capture current work context.\n\n")
		return
	}

	b.WriteString("=== ACTIVE PROJECT PORTFOLIO ===\n")
	for i, p := range c.CurrentProjects {
		priority := "STANDARD PRIORITY"
		focus := "Innovation & Growth"
		switch p.DeadlinePressure {
		case "high":
			priority = "HIGH PRIORITY"
			focus = "Delivery & Quality"
		case "medium":
			priority = "MODERATE PRIORITY"
		}

		fmt.Fprintf(b, "PROJECT %d: %s [%s]\n"+
			"- Tech Stack: %s\n"+
			"- Team Context: %s (%d people)\n"+
			"- Key Challenges: %s\n"+
			"- Strategic Focus: %s\n\n",
			i+1, p.Name, priority,
			strings.Join(p.TechStack, " + "),
			teamContext(p.TeamSize), p.TeamSize,
			strings.Join(p.CurrentChallenges, " | "),
			focus)
	}
}

func (c *UserContext) writeGoalSection(b *strings.Builder) {
	if len(c.Goals) == 0 {
		return
	}

	b.WriteString("=== DEVELOPMENT ROADMAP ===\n")
	for _, g := range c.Goals {
		fmt.Fprintf(b, "%s | %s | [%s] %d%%\n- Domain: %s | Target: %s\n",
			strings.TrimSpace(g.Description),
			strings.ToUpper(strings.ReplaceAll(g.Timeline, "-", " ")),
			progressBar(g.Progress),
			int(g.Progress*100),
			strings.ToUpper(strings.ReplaceAll(g.Category, "_", " ")),
			g.Timeline)
	}
	b.WriteByte('\n')
}

func writeIntentFramework(b *strings.Builder, intentType string) {
	switch intentType {
	case "meeting_preparation":
		b.WriteString("MEETING PREP FRAMEWORK:\n")
		b.WriteString("1. AGENDA PREPARATION: Key topics to address\n")
		b.WriteString("2. PROGRESS SUMMARY: Quantified achievements\n")
		b.WriteString("3. CHALLENGE ANALYSIS: Issues and proposed solutions\n")
		b.WriteString("4. NEXT STEPS: Specific, measurable actions\n")
	case "progress_reporting":
		b.WriteString("PROGRESS REPORT FRAMEWORK:\n")
		b.WriteString("1. ACCOMPLISHMENTS: What was delivered\n")
		b.WriteString("2. METRICS: Quantifiable progress indicators\n")
		b.WriteString("3. PROCESS IMPROVEMENTS: How efficiency was enhanced\n")
		b.WriteString("4. UPCOMING MILESTONES: What's next with timelines\n")
	case "problem_solving":
		b.WriteString("PROBLEM-SOLVING FRAMEWORK:\n")
		b.WriteString("1. ROOT CAUSE: Core issue identification\n")
		b.WriteString("2. SOLUTION OPTIONS: Alternative approaches\n")
		b.WriteString("3. TRADE-OFF ANALYSIS: Pros/cons of each option\n")
		b.WriteString("4. RECOMMENDATION: Best path forward with rationale\n")
	default:
		b.WriteString("GENERAL FRAMEWORK:\n")
		b.WriteString("1. SITUATION ANALYSIS: Current state assessment\n")
		b.WriteString("2. STRATEGIC OPTIONS: Available approaches\n")
		b.WriteString("3. ACTIONABLE RECOMMENDATIONS: Specific next steps\n")
		b.WriteString("4. SUCCESS METRICS: How to measure progress\n")
	}
}

// Instruction renders the trailing instruction block that tunes tone,
// depth, and tracking cadence to the stored preferences. It is appended
// after the context block and the query.
func (c *UserContext) Instruction() string {
	var b strings.Builder

	b.WriteString("=== AI ASSISTANT CONFIGURATION ===\n")
	b.WriteString("You are an expert advisor specializing in professional development.\n")
	b.WriteString("Your expertise: Strategic thinking, project management, career advancement.\n\n")

	b.WriteString("CORE PRINCIPLES:\n")
	b.WriteString("1. EVIDENCE-BASED: All suggestions grounded in verified user data\n")
	b.WriteString("2. CONTEXT-AWARE: Use conversation context without inventing details\n")
	b.WriteString("3. ACTIONABLE: Provide specific, measurable recommendations\n")
	b.WriteString("4. STRATEGIC: Balance immediate needs with long-term goals\n")
	b.WriteString("5. PROFESSIONAL: Maintain enterprise-level communication standards\n\n")

	b.WriteString("ABSOLUTE CONSTRAINTS:\n")
	b.WriteString("- NEVER fabricate relationships, conversations, or commitments\n")
	b.WriteString("- NEVER assume details about team dynamics or organizational structure\n")
	b.WriteString("- ALWAYS ground advice in documented projects and verified challenges\n")
	b.WriteString("- ALWAYS include success metrics and follow-up mechanisms\n\n")

	b.WriteString("RESPONSE STYLE CONFIGURATION:\n")
	writeStyleBlock(&b, c.Preferences.CommunicationStyle)
	writeLearningBlock(&b, c.LearningStyle.PreferredFormat)

	if len(c.Preferences.FocusAreas) > 0 {
		fmt.Fprintf(&b, "FOCUS PRIORITIES: Emphasize suggestions related to: %s\n",
			strings.Join(c.Preferences.FocusAreas, ", "))
	}

	writeComplexityBlock(&b, c.LearningStyle.ComplexityPreference)
	writeTrackingBlock(&b, c.LearningStyle.FeedbackPreference)

	b.WriteString("\nFINAL EXECUTION PROTOCOL:\n")
	b.WriteString("ANALYZE the query intent and map to relevant project context\n")
	b.WriteString("SYNTHESIZE 2-4 high-impact recommendations with:\n")
	b.WriteString("- SPECIFIC ACTIONS: What exactly to do\n")
	b.WriteString("- SUCCESS METRICS: How to measure progress\n")
	b.WriteString("- TIMELINE: When to complete each action\n")
	b.WriteString("- STAKEHOLDER IMPACT: Who benefits and how\n")
	b.WriteString("- FOLLOW-UP: Next review point or checkpoint\n\n")

	b.WriteString("Connect ALL advice to the user's documented projects, challenges, and goals.\n")

	return b.String()
}

func writeStyleBlock(b *strings.Builder, style string) {
	switch style {
	case "concise":
		b.WriteString("FORMAT: Executive Summary Style\n")
		b.WriteString("- Use bullet points and numbered lists\n")
		b.WriteString("- Maximum 3 key recommendations\n")
		b.WriteString("- Include one-line success metrics for each\n")
		b.WriteString("- Total response: 150-250 words\n")
	case "detailed":
		b.WriteString("FORMAT: Comprehensive Analysis Style\n")
		b.WriteString("- Provide detailed reasoning and context\n")
		b.WriteString("- Include implementation steps and timeline\n")
		b.WriteString("- Address potential challenges and mitigation\n")
		b.WriteString("- Total response: 300-500 words\n")
	case "casual":
		b.WriteString("FORMAT: Collaborative Advisor Style\n")
		b.WriteString("- Use friendly, encouraging language\n")
		b.WriteString("- Include motivational elements\n")
		b.WriteString("- Make suggestions feel approachable and doable\n")
	case "professional":
		b.WriteString("FORMAT: Enterprise Consultant Style\n")
		b.WriteString("- Use formal, structured language\n")
		b.WriteString("- Focus on business impact and ROI\n")
		b.WriteString("- Include stakeholder considerations\n")
		b.WriteString("- Emphasize measurable outcomes\n")
	default:
		b.WriteString("FORMAT: Balanced Professional Style\n")
		b.WriteString("- Clear, structured communication\n")
		b.WriteString("- Professional yet approachable tone\n")
		b.WriteString("- Focus on practical implementation\n")
	}
}

func writeLearningBlock(b *strings.Builder, format string) {
	switch format {
	case "hands_on":
		b.WriteString("LEARNING APPROACH: Prioritize practical exercises, code examples, and actionable tasks. Include specific implementation steps.\n")
	case "reading":
		b.WriteString("LEARNING APPROACH: Suggest articles, documentation, and written resources. Include book recommendations when relevant.\n")
	case "videos":
		b.WriteString("LEARNING APPROACH: Suggest video tutorials, online courses, and visual learning resources.\n")
	case "peer_learning":
		b.WriteString("LEARNING APPROACH: Emphasize collaborative learning, team discussions, mentoring opportunities, and community engagement.\n")
	default:
		b.WriteString("LEARNING APPROACH: Mix different learning methods based on the topic.\n")
	}
}

func writeComplexityBlock(b *strings.Builder, complexity string) {
	switch complexity {
	case "beginner":
		b.WriteString("COMPLEXITY: Provide beginner-friendly suggestions with step-by-step guidance. Avoid advanced concepts without explanation.\n")
	case "advanced":
		b.WriteString("COMPLEXITY: Feel free to suggest advanced techniques and deep technical concepts. Assume strong foundational knowledge.\n")
	case "adaptive":
		b.WriteString("COMPLEXITY: Adapt complexity based on the topic and provide both beginner and advanced options when relevant.\n")
	default:
		b.WriteString("COMPLEXITY: Use intermediate-level suggestions with clear explanations.\n")
	}
}

func writeTrackingBlock(b *strings.Builder, feedback string) {
	switch feedback {
	case "immediate":
		b.WriteString("TRACKING: Include ways to get immediate feedback and quick wins. Suggest daily or weekly check-ins.\n")
	case "milestone":
		b.WriteString("TRACKING: Focus on milestone-based progress tracking. Suggest monthly or quarterly reviews.\n")
	default:
		b.WriteString("TRACKING: Include periodic progress checks and feedback mechanisms.\n")
	}
}

func relevanceBand(rank int) string {
	switch {
	case rank < 2:
		return "HIGH"
	case rank < 4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func teamContext(size int) string {
	switch {
	case size <= 1:
		return "Solo Project"
	case size <= 5:
		return "Small Team"
	case size <= 15:
		return "Medium Team"
	default:
		return "Large Team"
	}
}

func progressBar(progress float32) string {
	filled := int(progress * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", 10-filled)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
