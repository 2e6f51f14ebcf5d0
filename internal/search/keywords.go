package search

import (
	"context"
	"strings"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
)

// GenerateKeywords asks the LLM client for campaign.NumKeywords short
// search phrases derived from the target audience description (and key
// messages, if any), then clips to that count. An empty or errored
// response yields an empty, non-error slice: the caller treats zero
// keywords as a pipeline short-circuit, not a hard failure of this
// function.
func GenerateKeywords(ctx context.Context, client llm.Client, campaign domain.CampaignConfig) ([]string, error) {
	count := campaign.NumKeywords
	if count <= 0 {
		count = domain.DefaultNumKeywords
	}

	result, err := client.GenerateKeywords(ctx, campaign, count)
	if err != nil {
		return nil, nil
	}

	keywords := make([]string, 0, count)

	for _, kw := range result {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}

		if len(keywords) >= count {
			break
		}

		keywords = append(keywords, kw)
	}

	return keywords, nil
}
