package prompt

import (
	"fmt"
	"strings"

	"github.com/rankpilot/rankpilot/internal/domain"
)

// SEOPersona is the default system instruction for every text task.
const SEOPersona = `
You are an expert SEO Specialist and Content Strategist. Your goal is to help users improve their website's visibility on search engines like Google.

Your Capabilities:
1. Keyword Research: When given a topic, generate a list of 10 keywords categorized by Search Intent (Informational, Commercial, Transactional). Include "Long-Tail Keywords" that have lower competition.
2. Content Optimization: When given a draft text, analyze it for SEO. Suggest improvements for Headings (H1, H2), keyword density, and readability.
3. Meta Data Generation: Generate SEO-friendly Meta Titles (max 60 characters) and Meta Descriptions (max 160 characters).

Constraints:
- Always explain why a keyword or change is suggested.
- Do not keyword stuff. Prioritize user readability.
- Format your output using Markdown (bolding, lists, and tables) for clarity.
- Tone: Professional, helpful, and expert.
`

// imagePersona is inlined into the image prompt because the image model has
// no separate system-instruction channel.
const imagePersona = `You are a marketing content maker (Image) with 10+ years of experience. Your goal is to generate high-quality, visually appealing marketing images based on user content.`

// Keywords builds the keyword-research prompt. The grounding hint is only
// included when the call will actually have search access.
func Keywords(topic string, useGrounding bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Perform extensive keyword research for the topic: %q.\n", topic)
	b.WriteString("Generate a comprehensive table of at least 10 keywords.\n")
	b.WriteString(`Columns should be: Keyword, Search Intent (Informational, Commercial, Transactional), and a brief "Why target this?" explanation.` + "\n")
	b.WriteString("Include a mix of head terms and long-tail keywords.\n")
	if useGrounding {
		b.WriteString("Use Google Search to find currently trending or relevant variations if possible.\n")
	}
	b.WriteString("After the table, provide a brief strategy summary.")
	return b.String()
}

// Optimize builds the content-optimization prompt.
func Optimize(draft string) string {
	var b strings.Builder
	b.WriteString("Please analyze and optimize the following draft content for SEO.\n\n")
	b.WriteString("Draft Content:\n")
	fmt.Fprintf(&b, "%q\n\n", draft)
	b.WriteString("Tasks:\n")
	b.WriteString("1. Analyze the current state (strengths/weaknesses).\n")
	b.WriteString("2. Rewrite the content to improve keyword density, readability, and structure.\n")
	b.WriteString("3. Suggest a compelling H1 and subheadings (H2, H3).\n")
	b.WriteString("4. Ensure the tone remains professional but engaging.")
	return b.String()
}

// MetaTags builds the meta-tag prompt. The trailing fenced-JSON instruction
// is what the normalizer's JSONBlock later extracts for the SERP preview.
func MetaTags(content string) string {
	var b strings.Builder
	b.WriteString("Generate 3 options for SEO-friendly Meta Titles (max 60 chars) and Meta Descriptions (max 160 chars) for the following content.\n\n")
	fmt.Fprintf(&b, "Content: %q\n\n", content)
	b.WriteString("For the BEST option among them, provide a JSON block at the very end of your response like this:\n")
	b.WriteString("```json\n")
	b.WriteString("{\n")
	b.WriteString("  \"title\": \"The Title Here\",\n")
	b.WriteString("  \"description\": \"The Description Here\"\n")
	b.WriteString("}\n")
	b.WriteString("```")
	return b.String()
}

// CreateImage builds the prompt for a fresh marketing image.
func CreateImage(content string) string {
	return imagePersona + "\n\nTask: Create a marketing image based on this content: " + content
}

// RefineImage builds the prompt for an edit-in-context pass over a previous
// image; the image bytes themselves travel as a separate part.
func RefineImage(feedback string) string {
	return imagePersona + "\n\nTask: Improve this image based on the following feedback: " + feedback
}

// Chat serializes recent history plus the new user message into one block.
// Callers pass an already-windowed slice; every turn is resent verbatim.
func Chat(history []*domain.Turn, newUserText string) string {
	var b strings.Builder
	for _, t := range history {
		label := "User"
		if t.Author == domain.RoleAgent {
			label = "Agent"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(newUserText)
	b.WriteString("\nAgent:")
	return b.String()
}

// NewsDigest asks for the daily SEO news as a strict JSON array. Sent in
// JSON mode, so the reply body should be the array itself.
func NewsDigest(count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Curate the %d most relevant recent news items for SEO professionals (algorithm updates, search features, content strategy, industry moves).\n", count)
	b.WriteString("Respond with ONLY a JSON array of objects, each with these string fields:\n")
	b.WriteString(`"title", "summary" (1-2 sentences), "url", "source", "date" (e.g. "Apr 24, 2024"), and optionally "author".`)
	return b.String()
}

// ReadArticle builds the reader-mode prompt for a news item. Grounding gives
// the model a chance to actually look at the page.
func ReadArticle(url, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Read the article at %s", url)
	if title != "" {
		fmt.Fprintf(&b, " (titled %q)", title)
	}
	b.WriteString(" and produce a reader-mode summary in Markdown.\n")
	b.WriteString("Structure: a short lede, the key points as a list, and why it matters for SEO practitioners.\n")
	b.WriteString("If the page cannot be accessed, summarize what is publicly known about the story instead.")
	return b.String()
}
