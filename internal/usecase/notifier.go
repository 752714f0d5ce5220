package usecase

// Notifier receives the transient messages a user sees after an action.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

func orDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
