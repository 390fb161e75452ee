package judge

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// promptContentCap bounds the article excerpt embedded in the prompt.
const promptContentCap = 3000

// Placeholders keep the prompt well-formed when the analyst left a
// campaign field empty.
const (
	placeholderKeyMessage = "No key message was specified; assess how clearly the article conveys its main topic."
	placeholderProject    = "No project description was specified; assess the article's general industry appeal."
)

// buildPrompt renders the scoring instruction for one item.
func buildPrompt(in Input) string {
	km := strings.TrimSpace(in.KeyMessage)
	if km == "" {
		km = placeholderKeyMessage
	}
	desc := strings.TrimSpace(in.ProjectDescription)
	if desc == "" {
		desc = placeholderProject
	}

	var b strings.Builder
	b.WriteString("You are a professional PR and communications analyst. Score one article against the campaign context below.\n\n")
	b.WriteString("Inputs:\n")
	fmt.Fprintf(&b, "1. Target audience mode: %s\n", in.Audience.Label())
	fmt.Fprintf(&b, "2. Media outlet: %s\n", in.MediaName)
	fmt.Fprintf(&b, "3. Key message: %s\n", km)
	fmt.Fprintf(&b, "4. Project description: %s\n", desc)
	fmt.Fprintf(&b, "5. Article content (may be truncated):\n%s\n\n", clipRunes(in.Content, promptContentCap))

	b.WriteString("Score three dimensions, each from 0 to 10:\n")
	b.WriteString("1. km_score: how effectively the article delivers the key message (0 = absent, 10 = conveyed in depth).\n")
	b.WriteString("2. acquisition_score: given the project description, how strong is the article's customer-acquisition appeal?\n")
	b.WriteString("3. audience_precision_score: given the outlet and audience mode, how precisely does the article reach the target audience?\n\n")

	b.WriteString("Respond with a single JSON object and nothing else. ")
	b.WriteString("Do not wrap it in markdown code fences. ")
	b.WriteString("Keep \"comment\" under 200 characters.\n")
	b.WriteString(`{"km_score": 0, "acquisition_score": 0, "audience_precision_score": 0, "comment": ""}`)

	return b.String()
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
