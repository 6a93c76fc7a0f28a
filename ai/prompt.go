package ai

import "strings"

// BuildContext joins the data summary and the user's question into the user message.
// Without a dataset the summary is empty and the message starts with a space.
func BuildContext(dataSummary, userPrompt string) string {
	var b strings.Builder
	b.WriteString(dataSummary)
	b.WriteString(" Use this data to answer: ")
	b.WriteString(userPrompt)
	return b.String()
}
