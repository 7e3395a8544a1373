package outbox

// Routing maps event types to transport topics. The table is injected at
// construction time rather than switched on inline, so adding an event type
// is a wiring change, not a dispatcher change.
type Routing struct {
	topics       map[string]string
	defaultTopic string
}

// NewRouting builds a routing table. Event types absent from topics resolve
// to defaultTopic.
func NewRouting(topics map[string]string, defaultTopic string) Routing {
	copied := make(map[string]string, len(topics))
	for k, v := range topics {
		copied[k] = v
	}
	return Routing{topics: copied, defaultTopic: defaultTopic}
}

// TopicFor resolves the topic for an event type.
func (r Routing) TopicFor(eventType string) string {
	if topic, ok := r.topics[eventType]; ok {
		return topic
	}
	return r.defaultTopic
}
