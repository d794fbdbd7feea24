package ui

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"typetrace/cmd/typetrace-gui/internal/theme"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogInfo
	dialogError
	dialogConfirm
	dialogSavePath
)

// DialogHost implements the recorder's dialog collaborator as modal
// overlays. One dialog at a time; while a dialog is up the scrim
// swallows pointer input so the controls behind it stay inert, which
// is the modal behavior the rest of the app assumes.
type DialogHost struct {
	th *theme.Theme

	kind    dialogKind
	title   string
	message string

	// Save-path dialog state.
	exportDir string
	extension string
	pathInput widget.Editor

	// Pending answers.
	confirmResult func(bool)
	saveResult    func(string, bool)

	okBtn     widget.Clickable
	yesBtn    widget.Clickable
	noBtn     widget.Clickable
	saveBtn   widget.Clickable
	cancelBtn widget.Clickable
	scrim     widget.Clickable

	clock func() time.Time
}

// NewDialogHost returns an inactive dialog host. Save-path suggestions
// are placed in exportDir.
func NewDialogHost(th *theme.Theme, exportDir string) *DialogHost {
	return &DialogHost{
		th:        th,
		exportDir: exportDir,
		clock:     time.Now,
	}
}

// SetExportDir changes the directory suggested by the save dialog.
func (d *DialogHost) SetExportDir(dir string) { d.exportDir = dir }

// Active reports whether a dialog is currently shown.
func (d *DialogHost) Active() bool { return d.kind != dialogNone }

// Info shows an informational dialog with an OK button.
func (d *DialogHost) Info(title, message string) {
	d.kind = dialogInfo
	d.title = title
	d.message = message
}

// Error shows an error dialog with an OK button.
func (d *DialogHost) Error(title, message string) {
	d.kind = dialogError
	d.title = title
	d.message = message
}

// Confirm shows a yes/no dialog; result receives the user's choice.
func (d *DialogHost) Confirm(title, message string, result func(bool)) {
	d.kind = dialogConfirm
	d.title = title
	d.message = message
	d.confirmResult = result
}

// SavePath shows a destination dialog prefilled with a timestamped
// file name; result receives the chosen path, or ok=false on cancel.
func (d *DialogHost) SavePath(suggestedExt string, result func(path string, ok bool)) {
	d.kind = dialogSavePath
	d.title = "Save Log"
	d.message = "Save recorded keystrokes to:"
	d.extension = suggestedExt
	d.saveResult = result

	name := fmt.Sprintf("typing-log-%s%s", d.clock().Format("20060102-150405"), suggestedExt)
	d.pathInput.SetText(filepath.Join(d.exportDir, name))
}

func (d *DialogHost) dismiss() {
	d.kind = dialogNone
	d.confirmResult = nil
	d.saveResult = nil
}

// update processes button clicks and resolves the pending dialog.
func (d *DialogHost) update(gtx layout.Context) {
	switch d.kind {
	case dialogInfo, dialogError:
		if d.okBtn.Clicked(gtx) {
			d.dismiss()
		}
	case dialogConfirm:
		if d.yesBtn.Clicked(gtx) {
			result := d.confirmResult
			d.dismiss()
			if result != nil {
				result(true)
			}
		}
		if d.noBtn.Clicked(gtx) {
			result := d.confirmResult
			d.dismiss()
			if result != nil {
				result(false)
			}
		}
	case dialogSavePath:
		if d.saveBtn.Clicked(gtx) {
			path := d.pathInput.Text()
			result := d.saveResult
			d.dismiss()
			if result != nil {
				result(path, path != "")
			}
		}
		if d.cancelBtn.Clicked(gtx) {
			result := d.saveResult
			d.dismiss()
			if result != nil {
				result("", false)
			}
		}
	}
}

// Layout draws the active dialog over the rest of the window.
func (d *DialogHost) Layout(gtx layout.Context) layout.Dimensions {
	if d.kind == dialogNone {
		return layout.Dimensions{}
	}

	d.update(gtx)
	if d.kind == dialogNone {
		// Resolved this frame; nothing left to draw.
		return layout.Dimensions{}
	}

	// Scrim swallows clicks meant for the view behind the dialog.
	d.scrim.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := gtx.Constraints.Max
		paint.FillShape(gtx.Ops, d.th.Palette.Scrim, clip.Rect{Max: size}.Op())
		return layout.Dimensions{Size: size}
	})

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Max.X = gtx.Dp(420)
		return d.layoutPanel(gtx)
	})
}

func (d *DialogHost) layoutPanel(gtx layout.Context) layout.Dimensions {
	rr := gtx.Dp(d.th.Config.CornerRadius)
	inset := layout.UniformInset(d.th.Config.Padding)

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			size := gtx.Constraints.Min
			shape := clip.UniformRRect(image.Rect(0, 0, size.X, size.Y), rr)
			paint.FillShape(gtx.Ops, d.th.Palette.Surface, shape.Op(gtx.Ops))
			return layout.Dimensions{Size: size}
		},
		func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						title := material.H6(d.th.Theme, d.title)
						title.TextSize = d.th.Config.FontTitle
						if d.kind == dialogError {
							title.Color = d.th.Palette.Error
						} else {
							title.Color = d.th.Palette.Text
						}
						return title.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: d.th.Config.Spacing}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						body := material.Body1(d.th.Theme, d.message)
						body.Color = d.th.Palette.Text
						body.TextSize = d.th.Config.FontBody
						return body.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: d.th.Config.Spacing}.Layout),
					layout.Rigid(d.layoutInput),
					layout.Rigid(layout.Spacer{Height: d.th.Config.Spacing}.Layout),
					layout.Rigid(d.layoutButtons),
				)
			})
		},
	)
}

func (d *DialogHost) layoutInput(gtx layout.Context) layout.Dimensions {
	if d.kind != dialogSavePath {
		return layout.Dimensions{}
	}
	d.pathInput.SingleLine = true
	ed := material.Editor(d.th.Theme, &d.pathInput, "path")
	ed.TextSize = d.th.Config.FontBody
	border := widget.Border{
		Color:        d.th.Palette.Border,
		CornerRadius: unit.Dp(2),
		Width:        unit.Dp(1),
	}
	return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(6)).Layout(gtx, ed.Layout)
	})
}

func (d *DialogHost) layoutButtons(gtx layout.Context) layout.Dimensions {
	spacer := layout.Rigid(layout.Spacer{Width: d.th.Config.Spacing}.Layout)
	button := func(b *widget.Clickable, label string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(d.th.Theme, b, label)
			btn.TextSize = d.th.Config.FontBody
			btn.CornerRadius = d.th.Config.CornerRadius
			return btn.Layout(gtx)
		})
	}

	row := layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}
	switch d.kind {
	case dialogConfirm:
		return row.Layout(gtx,
			button(&d.noBtn, "No"),
			spacer,
			button(&d.yesBtn, "Yes"),
		)
	case dialogSavePath:
		return row.Layout(gtx,
			button(&d.cancelBtn, "Cancel"),
			spacer,
			button(&d.saveBtn, "Save"),
		)
	default:
		return row.Layout(gtx, button(&d.okBtn, "OK"))
	}
}
