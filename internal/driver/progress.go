package driver

import "time"

// Status captures the progress state of one file.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Status  Status
	Err     error
	Elapsed time.Duration
	Tokens  int
}

// Terminal reports whether no further events follow for the file.
func (e Event) Terminal() bool {
	return e.Status == StatusDone || e.Status == StatusCached || e.Status == StatusError
}

// ProgressSink consumes progress events. OnEvent may be called from
// several goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
