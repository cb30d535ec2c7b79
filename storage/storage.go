package storage

// Keys under which the services persist their collections. There is no schema
// versioning; a missing or unreadable value means "use hardcoded defaults".
const (
	KeySession       = "current-session"
	KeyUsers         = "user-records"
	KeyNotifications = "notification-log"
	KeyCatalog       = "catalog-entries"
	KeyPayments      = "payment-options"
	KeyTips          = "tip-options"
	KeyAppSettings   = "app-settings"
)

// Adapter is durable key-value storage for JSON documents. Load returns
// (nil, nil) for a key that has never been written. Writes happen after the
// in-memory mutation they record, so a failed Save never rolls anything back;
// callers log and carry on.
type Adapter interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}
