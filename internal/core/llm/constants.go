package llm

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4.5"
	defaultGoogleModel    = "gemini-2.0-flash-lite"

	rateLimiterBurst = 5

	anthropicMaxTokens = 2048

	statusSuccess = "success"
	statusError   = "error"

	logKeyProvider = "provider"
	logKeyModel    = "model"
)

const (
	defaultCircuitThreshold = 5
)
