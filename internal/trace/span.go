package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// Span is an open interval of work. Spans below the tracer's level still
// carry an id and a tracer so that their children and a failing end are
// recorded.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	attrs   []Attr
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, "", parent)
}

// BeginFile opens a file-scope span for path. Events from the span and its
// children carry path in Event.File.
func BeginFile(t Tracer, path string, parent uint64) *Span {
	return begin(t, ScopeFile, path, path, parent)
}

func begin(t Tracer, scope Scope, name, file string, parent uint64) *Span {
	if !enabled(t) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	s.emit(&Event{Time: s.started, Kind: KindSpanBegin})
	return s
}

// Child opens a span nested in s, inheriting its tracer and file.
func (s *Span) Child(scope Scope, name string) *Span {
	if s == nil || !enabled(s.tracer) {
		return &Span{tracer: Nop}
	}
	return begin(s.tracer, scope, name, s.file, s.id)
}

// Point records an instant event under s.
func (s *Span) Point(scope Scope, name, detail string) {
	if s == nil || !enabled(s.tracer) {
		return
	}
	ev := &Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: s.id,
		File:     s.file,
		Name:     name,
		Detail:   detail,
	}
	if s.tracer.Level().Accepts(ev) {
		s.tracer.Emit(ev)
	}
}

// Point records an instant event under the span with id parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if !enabled(t) {
		return
	}
	(&Span{tracer: t, id: parent}).Point(scope, name, detail)
}

// Attr adds a key/value pair to the end event.
func (s *Span) Attr(key, value string) *Span {
	if s == nil || !enabled(s.tracer) {
		return s
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	return s.end(detail, false)
}

// EndErr closes the span, marking it failed when err is non-nil.
func (s *Span) EndErr(err error) time.Duration {
	if err != nil {
		return s.end("error: "+err.Error(), true)
	}
	return s.end("", false)
}

func (s *Span) end(detail string, failed bool) time.Duration {
	if s == nil || !enabled(s.tracer) {
		return 0
	}
	now := time.Now()
	s.emit(&Event{Time: now, Kind: KindSpanEnd, Detail: detail, Failed: failed, Attrs: s.attrs})
	return now.Sub(s.started)
}

func (s *Span) emit(ev *Event) {
	ev.Seq = NextSeq()
	ev.Scope = s.scope
	ev.SpanID = s.id
	ev.ParentID = s.parent
	ev.File = s.file
	ev.Name = s.name
	if s.tracer.Level().Accepts(ev) {
		s.tracer.Emit(ev)
	}
}

// ID returns the span id, 0 for a nil or disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
