package assets

import "fmt"

// SourceGenerated and SourceCurated distinguish personalized questions from
// the static fallback bank.
const (
	SourceGenerated = "generated"
	SourceCurated   = "curated"
)

// curatedBank holds role-specific question sets served when generation is
// unavailable.
var curatedBank = map[string][]Question{
	"Backend Engineer": {
		{Question: "Walk me through a service you designed end to end. What would you change today?", Category: "System Design", Tip: "Pick one system and go deep on the trade-offs."},
		{Question: "How do you decide between SQL and NoSQL for a new feature?", Category: "Data Modeling", Tip: "Anchor the answer in access patterns, not technology preference."},
		{Question: "Describe a production incident you debugged. How did you find the root cause?", Category: "Operations", Tip: "Show the diagnostic process step by step."},
		{Question: "How do you version and evolve a public API without breaking clients?", Category: "API Design"},
	},
	"Frontend Engineer": {
		{Question: "How do you keep a large component tree fast as the app grows?", Category: "Performance", Tip: "Mention measurement before optimization."},
		{Question: "Describe your approach to state management and when local state is enough.", Category: "Architecture"},
		{Question: "How do you make a feature accessible from the start rather than retrofitting it?", Category: "Accessibility"},
		{Question: "Tell me about a tricky cross-browser bug and how you isolated it.", Category: "Debugging"},
	},
	"Data Scientist": {
		{Question: "Walk me through a model you shipped. How did you validate it before and after launch?", Category: "Modeling", Tip: "Cover both offline metrics and live monitoring."},
		{Question: "How do you handle missing or biased data in a training set?", Category: "Data Quality"},
		{Question: "Explain a complex analysis you presented to a non-technical audience.", Category: "Communication"},
		{Question: "When would you choose a simple model over a deep one?", Category: "Judgment"},
	},
	"DevOps Engineer": {
		{Question: "Describe your ideal CI/CD pipeline for a team of ten engineers.", Category: "Delivery"},
		{Question: "How do you approach capacity planning and autoscaling for a spiky workload?", Category: "Infrastructure"},
		{Question: "Tell me about an outage you handled. What changed afterwards?", Category: "Incident Response", Tip: "End with the concrete follow-up that prevented recurrence."},
		{Question: "How do you manage secrets across environments?", Category: "Security"},
	},
}

// genericCurated is served for roles without a dedicated set.
var genericCurated = []Question{
	{Question: "Tell me about the project you are most proud of and your specific contribution.", Category: "Experience", Tip: "Use a concrete result, ideally with a number."},
	{Question: "Describe a time you disagreed with a technical decision. What did you do?", Category: "Collaboration"},
	{Question: "What is the hardest bug or problem you have solved recently?", Category: "Problem Solving"},
	{Question: "How do you decide what to learn next, and what are you learning now?", Category: "Growth"},
}

// CuratedQuestions returns the static question set for a role, plus one
// role-framing question. It never fails and performs no generation calls.
func CuratedQuestions(targetRole string) []Question {
	base, ok := curatedBank[targetRole]
	if !ok {
		base = genericCurated
	}

	out := make([]Question, 0, len(base)+1)
	for _, q := range base {
		q.Source = SourceCurated
		out = append(out, q)
	}
	out = append(out, Question{
		Question: fmt.Sprintf("Why do you want to work as a %s, and what makes you ready for it now?", targetRole),
		Category: "Motivation",
		Source:   SourceCurated,
	})
	return out
}
