// internal/domain/entity/gateway.go
package entity

import "errors"

// Message is the message body accepted by the WhatsApp gateway
type Message struct {
	Text string `json:"text,omitempty"`
}

// Validate checks that the message carries content
func (m *Message) Validate() error {
	if m.Text == "" {
		return errors.New("message text is required")
	}
	return nil
}

// SendGatewayMessage is the request envelope for the gateway send endpoint
type SendGatewayMessage struct {
	CompanyID   string  `json:"companyId"`
	AgentID     string  `json:"agentId"`
	PhoneNumber string  `json:"phoneNumber"`
	Message     Message `json:"message"`
	ScheduleAt  string  `json:"scheduleAt,omitempty"`
	Type        string  `json:"type"`
}
