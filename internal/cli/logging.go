package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/config"
	"cryptoassist-api/pkg/assistant"
	"cryptoassist-api/pkg/confkit"
)

// digestPrefix is how much of the prompt sha256 is shown.
const digestPrefix = 12

// ConfigSummaryLines returns human readable lines describing the loaded app config.
// Credentials are never printed.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Listen: %s:%d", cfg.Host, cfg.Port),
		fmt.Sprintf("Dashboard (coins/news): %d / %d", cfg.Dashboard.ListingLimit, cfg.Dashboard.NewsLimit),
		sectionLine("Market config", cfg.Market),
		sectionLine("News config", cfg.News),
		sectionLine("LLM config", cfg.LLM),
		sectionLine("Assistant config", cfg.Assistant),
	}
	if cfg.Market.Value != nil {
		lines = append(lines, fmt.Sprintf("Market providers: %s (default %s)",
			sortedKeys(cfg.Market.Value.Providers), cfg.Market.Value.DefaultName()))
	}
	if cfg.News.Value != nil {
		lines = append(lines, fmt.Sprintf("News providers: %s (default %s)",
			sortedKeys(cfg.News.Value.Providers), cfg.News.Value.DefaultName()))
	}
	llm := cfg.LLMConfig()
	lines = append(lines, fmt.Sprintf("Completion runtime: %s mode=%s model=%s", llm.BaseURL, llm.Mode, llm.Model))

	return lines
}

// PromptSummaryLine describes the prompt the assistant renders with, so a
// running process can be matched to its template.
func PromptSummaryLine(a *assistant.Assistant) string {
	if a == nil {
		return "Prompt: <none>"
	}
	digest := a.PromptDigest()
	if len(digest) > digestPrefix {
		digest = digest[:digestPrefix]
	}
	cfg := a.Config()
	return fmt.Sprintf("Prompt: %s sha256=%s format=%s max_news=%d", a.PromptName(), digest, cfg.Format, cfg.MaxNews)
}

// LogPromptSummary emits PromptSummaryLine using logx.
func LogPromptSummary(a *assistant.Assistant) {
	logx.Infof("config • %s", PromptSummaryLine(a))
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: defaults", name)
	}
}

func sortedKeys[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
