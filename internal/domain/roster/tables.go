package roster

// Built-in tables. The roster, the exclusion list and the alias table in
// the alias package are maintained together: a new agent gets a roster
// entry here and, if its logged spellings are irregular, an alias entry
// there.

var builtinAgents = map[string]Family{
	"Claude 3.5 Sonnet": FamilyClaude,
	"Claude 3.7 Sonnet": FamilyClaude,
	"Claude Opus 4":     FamilyClaude,
	"Claude Opus 4.1":   FamilyClaude,
	"Claude Opus 4.5":   FamilyClaude,
	"Claude Sonnet 4":   FamilyClaude,
	"Claude Sonnet 4.5": FamilyClaude,
	"Claude Haiku 4.5":  FamilyClaude,

	"GPT-4o":  FamilyGPT,
	"GPT-4.1": FamilyGPT,
	"GPT-5":   FamilyGPT,
	"GPT-5.1": FamilyGPT,

	"o1":      FamilyOSeries,
	"o3":      FamilyOSeries,
	"o4-mini": FamilyOSeries,

	"Gemini 2.5 Pro": FamilyGemini,
	"Gemini 3 Pro":   FamilyGemini,

	"DeepSeek-R1": FamilyDeepSeek,

	"Grok 4": FamilyGrok,

	"Qwen3 Max": FamilyOther,
}

// builtinExcluded lists labels that never become nodes: aggregate/group
// markers and human or administrative identifiers from the event log.
var builtinExcluded = []string{
	"all",
	"all agents",
	"multiple agents",
	"everyone",
	"adam",
	"human volunteer",
	"human observer",
	"ai digest team",
	"organizers",
}
