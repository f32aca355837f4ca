package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllAgentPromptsExist(t *testing.T) {
	keys := []string{
		"resume", "cover_letter", "jd_match", "github",
		"location", "fairness_audit", "final_verdict",
	}

	for _, key := range keys {
		prompt, err := Get("agents.json", key)
		require.NoError(t, err, "prompt %q must exist", key)
		assert.Contains(t, prompt, "Return ONLY valid JSON", "prompt %q must demand JSON output", key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("agents.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "resume")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, you applied for {{.Role}}."
	result := Format(template, map[string]string{
		"Name": "Ada",
		"Role": "Staff Engineer",
	})

	assert.Equal(t, "Hello Ada, you applied for Staff Engineer.", result)
}

func TestFormat_NoPlaceholdersLeftBehind(t *testing.T) {
	prompt := MustGet("agents.json", "location")
	filled := Format(prompt, map[string]string{
		"ApplicantCity":     "Berlin",
		"ApplicantCountry":  "Germany",
		"WillingToRelocate": "true",
		"JobLocationType":   "Remote",
		"JobCity":           "Lisbon",
		"JobCountry":        "Portugal",
	})

	assert.False(t, strings.Contains(filled, "{{."), "all placeholders should be replaced")
}
