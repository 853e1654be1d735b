package storage

// KeyValueStore is the persistence collaborator. Values are strings, keys are namespaced
// under Prefix by the implementations. Writes are best effort: failures are logged and
// counted, never returned, so in-memory state stays the source of truth.
type KeyValueStore interface {
	Get(key Key) (string, bool)
	Set(key Key, value string)
	Remove(key Key)
}
