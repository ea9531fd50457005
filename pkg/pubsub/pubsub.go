package pubsub

// Topic prefixes for dataset snapshots and loader failures. The topic suffix
// is the dataset resource name (e.g. "drivers.json").
const (
	PubSubDatasetPreffix = "dataset/"
	PubSubFailurePreffix = "failure/"
)

var (
	// DatasetPubSub carries JSON-encoded dataset snapshots published by the
	// datasets manager on every refresh.
	DatasetPubSub = NewPubSub[string]()

	// FailurePubSub carries JSON-encoded model.DatasetFailure events.
	FailurePubSub = NewPubSub[string]()
)
