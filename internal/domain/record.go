package domain

// TokenUsageKey is the record key carrying per-call token telemetry.
const TokenUsageKey = "_tokenUsage"

// Record is a finished analysis result: one value per enabled field,
// a tags object with one boolean per declared tag, and token telemetry
// under TokenUsageKey.
type Record map[string]interface{}

// Tags returns the record's tags object, or nil when absent.
func (r Record) Tags() map[string]interface{} {
	tags, _ := r["tags"].(map[string]interface{})
	return tags
}

// TokenUsage reports how many tokens a single model call consumed.
// CachedTokens and ThoughtsTokens are zero when the provider omits the
// corresponding counters.
type TokenUsage struct {
	PromptTokens   int `json:"promptTokens"`
	OutputTokens   int `json:"outputTokens"`
	TotalTokens    int `json:"totalTokens"`
	CachedTokens   int `json:"cachedTokens"`
	ThoughtsTokens int `json:"thoughtsTokens"`
}
