package publisher

// Publisher represents a service for publishing created-listing events
type Publisher interface {
	// Publish publishes a message to the stream
	Publish(message []byte) error

	// TrimStream trims the stream to the configured maximum length
	TrimStream() error

	// Close closes the publisher connection
	Close() error
}
