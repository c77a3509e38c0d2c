package providers

import (
	"os"
)

// TestConfig holds provider configuration loaded from environment variables
// for opt-in live tests.
type TestConfig struct {
	OpenAIAPIKey string
	OpenAIModel  string
}

// LoadTestConfig loads the OpenAI key and optional model from the environment.
func LoadTestConfig() TestConfig {
	return TestConfig{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("CARDSCAN_OPENAI_MODEL"),
	}
}

// HasOpenAI returns true if an OpenAI API key is configured.
func (c TestConfig) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
