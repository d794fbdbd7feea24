// Package recorder implements the recording state machine and the
// operations behind the Start/Stop/Save/Clear controls.
//
// The recorder owns no widgets. The GUI feeds it key and focus
// notifications and renders from its state; dialogs and the save-path
// picker are collaborators behind small interfaces so the core can be
// driven from tests without a display.
//
// Everything here runs on the UI event loop. Dialog answers arrive
// through callbacks because GUI dialogs are modal overlays resolved on
// a later frame; test fakes may answer synchronously.
package recorder

import (
	"fmt"
	"time"

	"typetrace/internal/eventlog"
	"typetrace/internal/export"
	"typetrace/internal/keyevent"
	"typetrace/internal/logging"
)

// State is the recording state. There are exactly two.
type State int

const (
	// StateIdle is the initial state: key events are not captured.
	StateIdle State = iota
	// StateRecording captures key events delivered to the focused
	// typing area.
	StateRecording
)

// String returns the state name.
func (s State) String() string {
	if s == StateRecording {
		return "Recording"
	}
	return "Idle"
}

// KeySource is a focus-scoped key event subscription. Subscribe and
// Unsubscribe toggle delivery of key notifications to the recorder;
// Focus requests input focus for the typing area. The source must only
// ever deliver events the toolkit routed to the focused widget — never
// a global hook.
type KeySource interface {
	Subscribe()
	Unsubscribe()
	Focus()
}

// Dialogs is the dialog collaborator. Confirm and SavePath report the
// user's choice through the result callback.
type Dialogs interface {
	Info(title, message string)
	Error(title, message string)
	Confirm(title, message string, result func(confirmed bool))
	SavePath(suggestedExt string, result func(path string, ok bool))
}

// Notifier posts a desktop notification. Implementations must treat
// failures as non-fatal.
type Notifier interface {
	Notify(summary, body string) error
}

// SessionArchive records session metadata (never key content) when the
// user has the history feature enabled.
type SessionArchive interface {
	BeginSession(start time.Time) (int64, error)
	EndSession(id int64, stop time.Time, events int) error
	RecordExport(id int64, at time.Time, events int, path string) error
}

// Dialog titles, matching the control each belongs to.
const (
	titleSave  = "Save Log"
	titleClear = "Clear Log"
	titleQuit  = "Quit"
)

// Recorder is the application core: the two-state machine plus the log
// buffer operations. Not safe for concurrent use; it belongs to the UI
// event loop, which is the only mutator (dialog callbacks run there
// too).
type Recorder struct {
	state   State
	focused bool

	buf     *eventlog.Buffer
	source  KeySource
	dialogs Dialogs

	clock     func() time.Time
	notifier  Notifier
	archive   SessionArchive
	session   int64
	exportExt string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) { r.clock = clock }
}

// WithNotifier enables desktop notifications after a successful save.
func WithNotifier(n Notifier) Option {
	return func(r *Recorder) { r.notifier = n }
}

// WithArchive enables session metadata archiving.
func WithArchive(a SessionArchive) Option {
	return func(r *Recorder) { r.archive = a }
}

// WithExportExtension changes the extension suggested by the save
// dialog. Default is ".txt".
func WithExportExtension(ext string) Option {
	return func(r *Recorder) { r.exportExt = ext }
}

// New returns an idle recorder over buf.
func New(buf *eventlog.Buffer, source KeySource, dialogs Dialogs, opts ...Option) *Recorder {
	r := &Recorder{
		buf:       buf,
		source:    source,
		dialogs:   dialogs,
		clock:     time.Now,
		exportExt: ".txt",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current state.
func (r *Recorder) State() State { return r.state }

// Recording reports whether the recorder is in StateRecording.
func (r *Recorder) Recording() bool { return r.state == StateRecording }

// StartEnabled reports whether the Start control should be enabled.
// Exactly one of StartEnabled/StopEnabled is true at any time.
func (r *Recorder) StartEnabled() bool { return r.state == StateIdle }

// StopEnabled reports whether the Stop control should be enabled.
func (r *Recorder) StopEnabled() bool { return r.state == StateRecording }

// Buffer returns the underlying event log buffer.
func (r *Recorder) Buffer() *eventlog.Buffer { return r.buf }

// Start transitions Idle -> Recording: subscribes the key source and
// moves input focus to the typing area. No-op while already recording.
func (r *Recorder) Start() {
	if r.state == StateRecording {
		return
	}
	r.source.Subscribe()
	r.state = StateRecording
	r.source.Focus()
	r.beginSession()
	logging.Info("recording started")
}

// Stop transitions Recording -> Idle and unsubscribes the key source.
// No-op while idle.
func (r *Recorder) Stop() {
	if r.state == StateIdle {
		return
	}
	r.source.Unsubscribe()
	r.state = StateIdle
	r.endSession()
	logging.Info("recording stopped", "events", r.buf.Len())
}

// SetFocused records the typing area's focus state. Status text depends
// on it; capture itself does not need to — the toolkit only delivers
// key events to a focused widget.
func (r *Recorder) SetFocused(focused bool) {
	r.focused = focused
}

// Focused returns the last reported focus state.
func (r *Recorder) Focused() bool { return r.focused }

// Status derives the status line from the recording and focus states.
func (r *Recorder) Status() string {
	switch {
	case r.state == StateIdle:
		return "Idle, press Start"
	case r.focused:
		return "Recording, window focused"
	default:
		return "Recording, window not focused (not capturing)"
	}
}

// HandleKey appends one captured keystroke. Events arriving while idle
// are dropped: the source is unsubscribed then, but a frame already in
// flight may still deliver.
func (r *Recorder) HandleKey(keysym, char string) {
	if r.state != StateRecording {
		return
	}
	r.buf.Append(keyevent.New(r.clock(), keysym, char))
}

// Clear empties the buffer after user confirmation. An empty buffer is
// a no-op and skips the confirmation entirely.
func (r *Recorder) Clear() {
	if r.buf.Empty() {
		return
	}
	r.dialogs.Confirm(titleClear, "Clear recorded events from the app?", func(confirmed bool) {
		if !confirmed {
			return
		}
		r.buf.Clear()
		logging.Info("log cleared")
	})
}

// Save exports the buffer to a user-chosen text file. Empty buffer:
// inform and return without touching the filesystem. Cancelled picker:
// silent no-op. Write failure: error dialog, buffer untouched.
func (r *Recorder) Save() {
	if r.buf.Empty() {
		r.dialogs.Info(titleSave, "No events to save.")
		return
	}
	r.dialogs.SavePath(r.exportExt, func(path string, ok bool) {
		if !ok {
			return
		}
		records := r.buf.Snapshot()
		if err := export.Save(path, r.clock(), records); err != nil {
			logging.Error("save failed", "path", path, "err", err)
			r.dialogs.Error(titleSave, fmt.Sprintf("Failed to save file:\n%v", err))
			return
		}
		r.recordExport(len(records), path)
		r.dialogs.Info(titleSave, fmt.Sprintf("Saved %d events to:\n%s", len(records), path))
		if r.notifier != nil {
			if err := r.notifier.Notify("Typing Recorder", fmt.Sprintf("Saved %d events", len(records))); err != nil {
				logging.Warn("desktop notification failed", "err", err)
			}
		}
	})
}

// CloseRequested handles a window close request. While recording it
// asks for confirmation; proceed runs only if the user confirms (or the
// recorder is idle). A declined close leaves the recorder recording and
// the buffer untouched.
func (r *Recorder) CloseRequested(proceed func()) {
	if r.state != StateRecording {
		proceed()
		return
	}
	r.dialogs.Confirm(titleQuit, "Recording is in progress. Stop and quit?", func(confirmed bool) {
		if confirmed {
			proceed()
		}
	})
}

func (r *Recorder) beginSession() {
	if r.archive == nil {
		return
	}
	id, err := r.archive.BeginSession(r.clock())
	if err != nil {
		logging.Warn("session archive begin failed", "err", err)
		return
	}
	r.session = id
}

func (r *Recorder) endSession() {
	if r.archive == nil || r.session == 0 {
		return
	}
	if err := r.archive.EndSession(r.session, r.clock(), r.buf.Len()); err != nil {
		logging.Warn("session archive end failed", "err", err)
	}
}

func (r *Recorder) recordExport(events int, path string) {
	if r.archive == nil {
		return
	}
	if err := r.archive.RecordExport(r.session, r.clock(), events, path); err != nil {
		logging.Warn("session archive export failed", "err", err)
	}
}
