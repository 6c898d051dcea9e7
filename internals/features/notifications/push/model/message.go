package model

// Failure codes reported per message. The two token codes mean the device
// registration is permanently gone.
const (
	CodeInvalidToken  = "messaging/invalid-registration-token"
	CodeNotRegistered = "messaging/registration-token-not-registered"
	CodeOther         = "messaging/unknown-error"
)

// Message is one notification addressed to one device token.
type Message struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Result is the provider's verdict for one Message.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// IsDeadToken reports whether a failed result means the token should be pruned.
func IsDeadToken(r Result) bool {
	if r.Success {
		return false
	}
	return r.ErrorCode == CodeInvalidToken || r.ErrorCode == CodeNotRegistered
}
