package domain

// AITagConfig configures the (externally provided) automatic tagging feature.
// It lives in the settings table as one JSON value; the lifecycle managers
// never read it.
type AITagConfig struct {
	TagLanguage   string   `json:"tag_language"`
	Type          string   `json:"type"`
	Model         string   `json:"model"`
	PreferredTags []string `json:"preferred_tags"`
}

// DefaultAITagConfig returns the configuration used before an admin saves one.
func DefaultAITagConfig() *AITagConfig {
	return &AITagConfig{
		TagLanguage:   "en",
		Type:          "cloudflare",
		PreferredTags: []string{},
	}
}
