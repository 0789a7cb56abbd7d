package domain

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatTurn is one prior message in an assistant conversation.
type ChatTurn struct {
	Role    ChatRole
	Content string
}

// TicketDraft is the structured title/description derived from a
// conversation when the user confirms escalation.
type TicketDraft struct {
	Title       string
	Description string
}
