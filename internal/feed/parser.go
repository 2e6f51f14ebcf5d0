// Package feed implements the optional RSS side-channel the Enrichment
// orchestrator's Phase 3 merge consults when config.RSSParsingEnabled is
// set: owner name/email, explicit flag, and category list, plus
// language/website overrides when the base lead lacks them.
package feed

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// ParsedFeed is the subset of an RSS/Atom feed's metadata the
// Enrichment merge step consumes.
type ParsedFeed struct {
	OwnerName  *string
	OwnerEmail *string
	Explicit   *bool
	Categories []string
	Language   *string
	Link       *string
}

// Parser fetches and parses a podcast's RSS feed.
type Parser struct {
	fp      *gofeed.Parser
	timeout time.Duration
	logger  *zerolog.Logger
}

// New builds a Parser with the given per-fetch timeout.
func New(timeout time.Duration, logger *zerolog.Logger) *Parser {
	return &Parser{fp: gofeed.NewParser(), timeout: timeout, logger: logger}
}

// Parse fetches feedURL and extracts owner/explicit/category metadata.
// A fetch or parse failure returns (nil, err); the caller treats this as
// "no RSS data available" rather than a stage failure, since RSS parsing
// is an optional side-channel.
func (p *Parser) Parse(ctx context.Context, feedURL string) (*ParsedFeed, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	parsed, err := p.fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn().Err(err).Str("feed_url", feedURL).Msg("feed: parse failed")
		}

		return nil, err
	}

	out := &ParsedFeed{Categories: parsed.Categories}

	if parsed.Language != "" {
		lang := parsed.Language
		out.Language = &lang
	}

	if parsed.Link != "" {
		link := parsed.Link
		out.Link = &link
	}

	if parsed.ITunesExt != nil {
		if parsed.ITunesExt.Owner != nil {
			if name := strings.TrimSpace(parsed.ITunesExt.Owner.Name); name != "" {
				out.OwnerName = &name
			}

			if email := strings.TrimSpace(parsed.ITunesExt.Owner.Email); email != "" {
				out.OwnerEmail = &email
			}
		}

		if explicit, ok := parseExplicit(parsed.ITunesExt.Explicit); ok {
			out.Explicit = &explicit
		}

		if len(parsed.ITunesExt.Categories) > 0 && len(out.Categories) == 0 {
			out.Categories = parsed.ITunesExt.Categories
		}
	}

	return out, nil
}

// parseExplicit interprets iTunes' loosely-specified explicit flag,
// which shows up as "yes"/"no"/"true"/"false"/"clean" across feeds in
// the wild.
func parseExplicit(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "explicit":
		return true, true
	case "no", "false", "clean":
		return false, true
	default:
		return false, false
	}
}
