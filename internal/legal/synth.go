package legal

import (
	"fmt"
	"strings"
)

// synthesisSections is the seven-section Markdown contract spec §4.12 requires from
// the external LLM ("receive (query, lang, acts_ctx, procs_ctx) and return Markdown
// structured into seven labeled sections; the core enforces only the section
// contract, not the text"). The core checks for these headers; it never rewrites or
// validates the prose underneath them.
var synthesisSections = []string{
	"Summary",
	"Applicable Law",
	"Relevant Acts",
	"Procedure",
	"Relevant Case Law",
	"Practical Steps",
	"Disclaimer",
}

const generalKnowledgeFallback = "SEARCH FAILED. ANSWER FROM GENERAL KNOWLEDGE."

// buildSynthesisPrompt assembles the (query, lang, acts_ctx, procs_ctx) synthesis
// prompt. When acts, procedures, and news are all empty, it appends the explicit
// general-knowledge instruction spec §8 scenario 5 requires to appear in the prompt.
func buildSynthesisPrompt(query, lang, actsCtx, procsCtx, newsCtx string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\nLanguage: %s\n\n", query, lang)
	fmt.Fprintf(&sb, "Acts context:\n%s\n\nProcedures context:\n%s\n\nNews context:\n%s\n\n", actsCtx, procsCtx, newsCtx)

	if actsCtx == "" && procsCtx == "" && newsCtx == "" {
		sb.WriteString(generalKnowledgeFallback + "\n\n")
	}

	sb.WriteString("Structure the answer in Markdown using exactly these seven sections, each as a level-2 heading:\n")
	for _, s := range synthesisSections {
		fmt.Fprintf(&sb, "## %s\n", s)
	}
	return sb.String()
}

// hasSectionContract reports whether answer contains every required section heading.
// The core only checks the contract's shape (spec §4.12); it never validates the
// prose underneath each heading.
func hasSectionContract(answer string) bool {
	for _, s := range synthesisSections {
		if !strings.Contains(answer, "## "+s) {
			return false
		}
	}
	return true
}

func contextLines(contexts []string) string {
	return strings.Join(contexts, "\n")
}
