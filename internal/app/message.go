package app

// MessageKind separates informational status from errors.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
)

// Message is one user-visible status line.
type Message struct {
	Kind MessageKind
	Text string
}

func infoMessage(text string) Message  { return Message{Kind: MessageInfo, Text: text} }
func errorMessage(text string) Message { return Message{Kind: MessageError, Text: text} }

// MessageQueue holds status messages in arrival order. The front message is
// shown until the next key press dismisses it.
type MessageQueue struct {
	items []Message
}

func (q *MessageQueue) Push(m Message) {
	q.items = append(q.items, m)
}

func (q *MessageQueue) PushInfo(text string) { q.Push(infoMessage(text)) }

func (q *MessageQueue) PushError(text string) { q.Push(errorMessage(text)) }

// Front returns the oldest pending message.
func (q *MessageQueue) Front() (Message, bool) {
	if len(q.items) == 0 {
		return Message{}, false
	}
	return q.items[0], true
}

// Pop drops the oldest pending message and reports whether one was dropped.
func (q *MessageQueue) Pop() bool {
	if len(q.items) == 0 {
		return false
	}
	q.items = q.items[1:]
	return true
}

func (q *MessageQueue) Len() int { return len(q.items) }
