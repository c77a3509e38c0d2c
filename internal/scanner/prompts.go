package scanner

import (
	"strings"

	"github.com/jackzampolin/cardscan/internal/card"
)

// UserPrompt accompanies the card image in the user message.
const UserPrompt = "Extract structured information from this business card."

// SystemPrompt fixes the output schema and the languages a card may use.
var SystemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an AI that extracts structured business card data. ")
	b.WriteString("The card may be in English, Arabic, or both.\n\n")
	b.WriteString("Return ONLY valid JSON in the following format:\n")
	b.WriteString("{\n")
	for i, f := range card.Fields {
		b.WriteString(`  "` + f + `": ""`)
		if i < len(card.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
