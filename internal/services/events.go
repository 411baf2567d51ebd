package services

// Live event names pushed over the websocket channel.
const (
	EventNotificationNew  = "notification.new"
	EventMessageNew       = "message.new"
	EventConversationRead = "conversation.read"
	EventUnreadChanged    = "unread.changed"
)

// EventPublisher pushes a live event to a connected user. Delivery is
// best effort: a user with no open connection simply misses the push
// and reconciles on their next fetch. Implemented by the websocket
// manager; services never import the transport.
type EventPublisher interface {
	Publish(userID, event string, payload interface{})
}

// NoopPublisher drops every event. Used in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, string, interface{}) {}
