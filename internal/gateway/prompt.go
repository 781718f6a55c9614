package gateway

import "fmt"

// systemPrompt is the fixed classification instruction. It pins the output
// schema the client parses: verdict, confidence, keyPhrases, reasoning.
const systemPrompt = `You are a fake news detection AI. Analyze the given news content and determine if it's REAL, FAKE, or UNCERTAIN.

Respond with a JSON object containing:
- verdict: "REAL" | "FAKE" | "UNCERTAIN"
- confidence: A number between 0 and 100
- keyPhrases: Array of strings highlighting important phrases that influenced your decision
- reasoning: Brief explanation of your analysis

Consider factors like:
- Source credibility
- Writing style and tone
- Verifiable facts
- Logical consistency
- Emotional manipulation
- Sensationalism`

// BuildUserPrompt embeds exactly one input into the user instruction. In URL
// mode the model is asked to fetch the content itself; the handler never
// fetches it.
func BuildUserPrompt(text, url string) string {
	if url != "" {
		return fmt.Sprintf("Analyze this news URL for credibility: %s\n\nNote: Fetch and analyze the content from this URL.", url)
	}
	return fmt.Sprintf("Analyze this news text for credibility:\n\n%s", text)
}
