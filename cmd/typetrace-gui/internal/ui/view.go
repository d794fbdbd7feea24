package ui

import (
	"fmt"
	"image"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"typetrace/cmd/typetrace-gui/internal/theme"
	"typetrace/internal/keysym"
	"typetrace/internal/recorder"
)

// allModifiers lists the modifier keys a captured key press may carry.
const allModifiers = key.ModShift | key.ModCtrl | key.ModAlt | key.ModSuper | key.ModCommand

// Source adapts the frame-based Gio input model to the recorder's
// subscribe/unsubscribe contract. Subscribe flips a flag; the view
// declares the key event filter only while the flag is set, so no key
// events reach the recorder while idle.
type Source struct {
	subscribed     bool
	focusRequested bool
}

func (s *Source) Subscribe()   { s.subscribed = true }
func (s *Source) Unsubscribe() { s.subscribed = false }
func (s *Source) Focus()       { s.focusRequested = true }

// RecorderView is the main window content: the control row, the typing
// area, the recorded-events list, and the status line.
type RecorderView struct {
	th  *theme.Theme
	rec *recorder.Recorder

	source     *Source
	translator *keysym.Translator
	dialogs    *DialogHost

	startBtn widget.Clickable
	stopBtn  widget.Clickable
	saveBtn  widget.Clickable
	clearBtn widget.Clickable
	quitBtn  widget.Clickable

	typingArea widget.Editor
	eventsList widget.List

	// onQuit performs the confirmed window close.
	onQuit func()
}

// Config assembles a RecorderView. The recorder must have been built
// with the KeySource and Dialogs returned by NewCollaborators.
type Config struct {
	Theme      *theme.Theme
	Recorder   *recorder.Recorder
	Source     *Source
	Dialogs    *DialogHost
	Translator *keysym.Translator
	OnQuit     func()
}

// NewCollaborators builds the key source and dialog host the recorder
// needs before the view itself exists.
func NewCollaborators(th *theme.Theme, exportDir string) (*Source, *DialogHost) {
	return &Source{}, NewDialogHost(th, exportDir)
}

// NewRecorderView creates the main view.
func NewRecorderView(cfg Config) *RecorderView {
	v := &RecorderView{
		th:         cfg.Theme,
		rec:        cfg.Recorder,
		source:     cfg.Source,
		translator: cfg.Translator,
		dialogs:    cfg.Dialogs,
		onQuit:     cfg.OnQuit,
	}
	v.typingArea.SingleLine = false
	v.eventsList.List.Axis = layout.Vertical
	return v
}

// Layout processes this frame's input and renders the window.
func (v *RecorderView) Layout(gtx layout.Context) layout.Dimensions {
	v.handleInput(gtx)

	paint.Fill(gtx.Ops, v.th.Palette.Background)

	content := layout.UniformInset(v.th.Config.Padding).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(v.layoutControls),
			layout.Rigid(layout.Spacer{Height: v.th.Config.Spacing}.Layout),
			layout.Flexed(1, v.layoutPanes),
			layout.Rigid(layout.Spacer{Height: v.th.Config.Spacing}.Layout),
			layout.Rigid(v.layoutStatus),
		)
	})

	v.dialogs.Layout(gtx)
	return content
}

// handleInput routes clicks, focus changes, and captured keys.
func (v *RecorderView) handleInput(gtx layout.Context) {
	// Buttons stay inert behind an active dialog; the scrim already
	// swallows pointer events, this is the keyboard-side guarantee.
	if !v.dialogs.Active() {
		if v.startBtn.Clicked(gtx) {
			v.rec.Start()
		}
		if v.stopBtn.Clicked(gtx) {
			v.rec.Stop()
		}
		if v.saveBtn.Clicked(gtx) {
			v.rec.Save()
		}
		if v.clearBtn.Clicked(gtx) {
			v.rec.Clear()
		}
		if v.quitBtn.Clicked(gtx) {
			v.rec.CloseRequested(v.onQuit)
		}
	}

	// Focus notifications for the typing area drive the status line.
	for {
		ev, ok := gtx.Event(key.FocusFilter{Target: &v.typingArea})
		if !ok {
			break
		}
		if fe, ok := ev.(key.FocusEvent); ok {
			v.rec.SetFocused(fe.Focus)
		}
	}

	// Key events are only observed while the recorder holds a
	// subscription, and only when the typing area has focus.
	if v.source.subscribed {
		for {
			ev, ok := gtx.Event(key.Filter{Focus: &v.typingArea, Optional: allModifiers})
			if !ok {
				break
			}
			ke, ok := ev.(key.Event)
			if !ok || ke.State != key.Press {
				continue
			}
			sym, ch := v.translator.Translate(ke.Name, ke.Modifiers)
			v.rec.HandleKey(sym, ch)
		}
	}

	if v.source.focusRequested {
		gtx.Execute(key.FocusCmd{Tag: &v.typingArea})
		v.source.focusRequested = false
	}
}

func (v *RecorderView) layoutControls(gtx layout.Context) layout.Dimensions {
	spacer := layout.Rigid(layout.Spacer{Width: v.th.Config.Spacing}.Layout)
	button := func(b *widget.Clickable, label string, enabled bool) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !enabled {
				gtx = gtx.Disabled()
			}
			btn := material.Button(v.th.Theme, b, label)
			btn.TextSize = v.th.Config.FontBody
			btn.CornerRadius = v.th.Config.CornerRadius
			return btn.Layout(gtx)
		})
	}

	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		button(&v.startBtn, "Start Recording", v.rec.StartEnabled()),
		spacer,
		button(&v.stopBtn, "Stop Recording", v.rec.StopEnabled()),
		spacer,
		button(&v.saveBtn, "Save Log...", true),
		spacer,
		button(&v.clearBtn, "Clear Log", true),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, 0)}
		}),
		button(&v.quitBtn, "Quit", true),
	)
}

func (v *RecorderView) layoutPanes(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Flexed(0.6, v.layoutTypingArea),
		layout.Rigid(layout.Spacer{Width: v.th.Config.Spacing}.Layout),
		layout.Flexed(0.4, v.layoutEvents),
	)
}

func (v *RecorderView) layoutTypingArea(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			l := material.Body2(v.th.Theme, "Type here (this area receives keyboard events):")
			l.Color = v.th.Palette.TextMuted
			l.TextSize = v.th.Config.FontCaption
			return l.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return v.panel(gtx, func(gtx layout.Context) layout.Dimensions {
				ed := material.Editor(v.th.Theme, &v.typingArea, "Start recording, then type...")
				ed.TextSize = v.th.Config.FontBody
				ed.Color = v.th.Palette.Text
				ed.HintColor = v.th.Palette.TextMuted
				return layout.UniformInset(unit.Dp(8)).Layout(gtx, ed.Layout)
			})
		}),
	)
}

func (v *RecorderView) layoutEvents(gtx layout.Context) layout.Dimensions {
	records := v.rec.Buffer().Snapshot()
	header := fmt.Sprintf("Recorded events (%d)", len(records))

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			l := material.Body2(v.th.Theme, header)
			l.Color = v.th.Palette.TextMuted
			l.TextSize = v.th.Config.FontCaption
			return l.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return v.panel(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					list := material.List(v.th.Theme, &v.eventsList)
					return list.Layout(gtx, len(records), func(gtx layout.Context, i int) layout.Dimensions {
						return v.layoutEventRow(gtx, records[i].Timestamp(), records[i].Keysym, records[i].Char)
					})
				})
			})
		}),
	)
}

func (v *RecorderView) layoutEventRow(gtx layout.Context, ts, sym, ch string) layout.Dimensions {
	cell := func(text string, width unit.Dp, muted bool) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if width > 0 {
				gtx.Constraints.Min.X = gtx.Dp(width)
				gtx.Constraints.Max.X = gtx.Dp(width)
			}
			l := material.Body2(v.th.Theme, text)
			l.TextSize = v.th.Config.FontCaption
			if muted {
				l.Color = v.th.Palette.TextMuted
			} else {
				l.Color = v.th.Palette.Text
			}
			return l.Layout(gtx)
		})
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		cell(ts, unit.Dp(150), true),
		cell(sym, unit.Dp(90), false),
		cell(ch, 0, false),
	)
}

func (v *RecorderView) layoutStatus(gtx layout.Context) layout.Dimensions {
	status := material.Body1(v.th.Theme, "Status: "+v.rec.Status())
	status.TextSize = v.th.Config.FontBody
	if v.rec.Recording() {
		status.Color = v.th.Palette.Recording
	} else {
		status.Color = v.th.Palette.TextMuted
	}
	return status.Layout(gtx)
}

// panel draws a bordered surface behind a widget.
func (v *RecorderView) panel(gtx layout.Context, w layout.Widget) layout.Dimensions {
	rr := gtx.Dp(v.th.Config.CornerRadius)
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			size := gtx.Constraints.Min
			shape := clip.UniformRRect(image.Rect(0, 0, size.X, size.Y), rr)
			paint.FillShape(gtx.Ops, v.th.Palette.Surface, shape.Op(gtx.Ops))
			paint.FillShape(gtx.Ops, v.th.Palette.Border, clip.Stroke{
				Path:  shape.Path(gtx.Ops),
				Width: 1,
			}.Op())
			return layout.Dimensions{Size: size}
		},
		w,
	)
}
