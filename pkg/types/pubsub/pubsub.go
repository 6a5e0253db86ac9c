package pubsub

type Publisher interface {
	Publish(data []byte) error
}

// Subscriber hands out a channel per consumer. The returned cancel func
// releases it.
type Subscriber interface {
	Subscribe() (<-chan []byte, func(), error)
}

type PubSub interface {
	Publisher
	Subscriber
}
