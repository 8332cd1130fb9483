package dispatcher

// MessageEvent is a newly created chat message as delivered by the change feed.
type MessageEvent struct {
	MessageID   string `json:"messageId"`
	RecipientID string `json:"recipientId"`
	SenderName  string `json:"senderName,omitempty"`
	Content     string `json:"content,omitempty"`
	ChatID      string `json:"chatId,omitempty"`
}

// UserProfile is the part of a user document the dispatcher reads.
type UserProfile struct {
	ID       string
	FCMToken string
}

// NotificationRequest is what gets handed to the push backend for one message.
type NotificationRequest struct {
	Title string
	Body  string
	Data  map[string]string
	Token string
}

type OutcomeKind int

const (
	OutcomeSkipped OutcomeKind = iota
	OutcomeDelivered
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one Handle call.
// Reason is nil only for OutcomeDelivered.
type Outcome struct {
	Kind              OutcomeKind
	Reason            error
	ProviderMessageID string
}

func skipped(reason error) Outcome {
	return Outcome{Kind: OutcomeSkipped, Reason: reason}
}

func failed(reason error) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

func delivered(providerMessageID string) Outcome {
	return Outcome{Kind: OutcomeDelivered, ProviderMessageID: providerMessageID}
}
