package models

// AssistantRequest is a single chat message for the assistant.
type AssistantRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// AssistantResponse carries the assistant reply.
type AssistantResponse struct {
	Reply string `json:"reply"`
	Topic string `json:"topic,omitempty"`
}
