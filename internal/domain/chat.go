package domain

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

const (
	// ChatGreeting seeds every new conversation. It is shown to the user
	// but never sent to the model.
	ChatGreeting = "Xin chào! Tôi là trợ lý AI của GymSup. Tôi có thể giúp gì cho bạn về các sản phẩm bổ sung?"

	// ChatApology replaces the model turn when the model call fails.
	ChatApology = "Rất tiếc, đã có lỗi xảy ra. Vui lòng thử lại sau."
)

// NewChatHistory returns a conversation seeded with the greeting.
func NewChatHistory() []ChatMessage {
	return []ChatMessage{{Role: ChatRoleModel, Text: ChatGreeting}}
}
