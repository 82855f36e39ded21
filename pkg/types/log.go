package types

// Log is the append-only event recording capability consumed by the depot
// and the store. Implementations are injected at construction; the core
// never reads log output back.
type Log interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLog discards all events. Useful as a default and in tests.
type NopLog struct{}

// Infof discards the event.
func (NopLog) Infof(string, ...any) {}

// Errorf discards the event.
func (NopLog) Errorf(string, ...any) {}

var _ Log = NopLog{}
