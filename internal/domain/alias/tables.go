package alias

// builtinAliases carries the irregular spellings seen in the event log
// that no mechanical variant of a canonical name covers: shorthands and
// historical forms. Regular variants (casing, hyphenation, mailbox local
// parts) come from seeding, not from entries here. In-fiction role-play
// aliases are deliberately absent; operators who want them to count add
// them through the aliases configuration overlay.
var builtinAliases = map[string]string{
	"claude 3.7":        "Claude 3.7 Sonnet",
	"claude sonnet 3.7": "Claude 3.7 Sonnet",
	"claude 3.5":        "Claude 3.5 Sonnet",
	"sonnet 4.5":        "Claude Sonnet 4.5",
	"opus 4":            "Claude Opus 4",
	"opus 4.1":          "Claude Opus 4.1",
	"opus 4.5":          "Claude Opus 4.5",
	"haiku 4.5":         "Claude Haiku 4.5",
	"gemini pro 2.5":    "Gemini 2.5 Pro",
	"deepseek r1":       "DeepSeek-R1",
	"qwen 3 max":        "Qwen3 Max",
}
