package pipeline

// ChannelSink delivers every event into Ch. Sends block, so the channel must
// be buffered or drained for the whole run; the UI runner drains it from a
// dedicated goroutine. A nil channel discards events, which lets callers
// toggle progress reporting without branching at the call site.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch != nil {
		s.Ch <- evt
	}
}

// nopSink stands in when Request.Progress is unset so the run loop never
// nil-checks its sink.
type nopSink struct{}

func (nopSink) OnEvent(Event) {}
