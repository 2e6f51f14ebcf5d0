package llm

import (
	"fmt"
	"strings"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

// buildKeywordPrompt asks for a JSON object of search keywords derived
// from a campaign's target audience and key messages.
func buildKeywordPrompt(campaign domain.CampaignConfig, count int) string {
	var sb strings.Builder

	sb.WriteString("Generate search keywords for finding podcasts to pitch a guest appearance on.\n\n")
	fmt.Fprintf(&sb, "Target audience: %s\n", campaign.TargetAudience)

	if len(campaign.KeyMessages) > 0 {
		sb.WriteString("Key messages the guest wants to discuss:\n")

		for _, m := range campaign.KeyMessages {
			fmt.Fprintf(&sb, "- %s\n", m)
		}
	}

	fmt.Fprintf(&sb, "\nReturn exactly %d distinct, concise search keywords or short phrases that a podcast directory search would use to surface shows covering this audience and these topics. ", count)
	sb.WriteString(`Respond with a single JSON object of the form {"keywords": ["...", "..."]} and nothing else.`)

	return sb.String()
}

// buildVettingMatchPrompt asks the model to judge how well an enriched
// profile fits a guest's pitch, as a 0-100 score with a short rationale.
func buildVettingMatchPrompt(guest domain.GuestProfile, profile domain.EnrichedProfile) string {
	var sb strings.Builder

	sb.WriteString("Judge how well this podcast fits a guest pitch.\n\n")
	fmt.Fprintf(&sb, "Guest bio: %s\n", guest.GuestBio)

	if len(guest.GuestTalkingPoints) > 0 {
		sb.WriteString("Guest talking points:\n")

		for _, tp := range guest.GuestTalkingPoints {
			fmt.Fprintf(&sb, "- %s\n", tp)
		}
	}

	fmt.Fprintf(&sb, "Ideal podcast description: %s\n\n", guest.IdealPodcastDescription)

	title := derefStr(profile.Title)
	desc := derefStr(profile.Description)
	fmt.Fprintf(&sb, "Candidate podcast title: %s\n", title)
	fmt.Fprintf(&sb, "Candidate podcast description: %s\n", desc)

	if len(profile.HostNames) > 0 {
		fmt.Fprintf(&sb, "Hosts: %s\n", strings.Join(profile.HostNames, ", "))
	}

	sb.WriteString("\nScore the fit from 0 (no fit) to 100 (ideal fit) based on topical overlap and audience alignment. ")
	sb.WriteString(`Respond with a single JSON object of the form {"score": <integer 0-100>, "explanation": "<one or two sentences>"} and nothing else.`)

	return sb.String()
}

// buildDiscoveryHintsPrompt asks the model to pull host names and up to
// eight social profile URLs out of assembled search-probe context,
// emitting null for anything not clearly present rather than guessing.
func buildDiscoveryHintsPrompt(assembledContext string) string {
	var sb strings.Builder

	sb.WriteString("Extract podcast host names and official social media profile URLs from the context below.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(assembledContext)
	sb.WriteString("\n\nRespond with a single JSON object with exactly these keys: ")
	sb.WriteString(`"host_names" (array of strings, empty array if none found), `)
	sb.WriteString(`"podcast_twitter_url", "podcast_linkedin_url", "podcast_instagram_url", `)
	sb.WriteString(`"podcast_facebook_url", "podcast_youtube_url", "podcast_tiktok_url", `)
	sb.WriteString(`"host_linkedin_url", "host_twitter_url" (each a URL string or null). `)
	sb.WriteString("Use null for any field not clearly and directly supported by the context. Never guess or fabricate a URL. Respond with the JSON object and nothing else.")

	return sb.String()
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
