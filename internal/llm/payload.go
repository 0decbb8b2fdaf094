package llm

// FormatChatPayload composes the message list sent to the completion
// endpoint in order: optional system prompt, prior history, optional
// trailing user message. History entries missing a role or content are
// skipped.
func FormatChatPayload(systemPrompt string, history []Message, userText string) []Message {
	payload := make([]Message, 0, len(history)+2)
	if systemPrompt != "" {
		payload = append(payload, Message{Role: RoleSystem, Content: systemPrompt})
	}
	for _, turn := range history {
		if turn.Role == "" || turn.Content == "" {
			continue
		}
		payload = append(payload, turn)
	}
	if userText != "" {
		payload = append(payload, Message{Role: RoleUser, Content: userText})
	}
	return payload
}
