package widgets

import (
	"github.com/hubastard/iui/engine/colors"
	"github.com/hubastard/iui/engine/ui"
)

// Answer is the outcome of a Confirm dialog for one frame.
type Answer uint8

const (
	Pending Answer = iota
	Yes
	No
)

// Confirm shows a modal question centred in area while *open is set. A click
// outside the dialog or Escape answers No. *open is cleared once answered.
func Confirm(ctx *ui.Context, name, question string, area ui.Rect, open *bool) Answer {
	if !*open {
		return Pending
	}
	w, h := min(area.W, 320), min(area.H, 140)
	r := ui.Rect{X: area.X + (area.W-w)/2, Y: area.Y + (area.H-h)/2, W: w, H: h}

	ans := Pending
	if ctx.BeginModal(name, r) {
		ctx.DrawRect(r, radius*2, colors.Color{0.12, 0.14, 0.18, 0.98}.Pack())
		Label(ctx, question, Text)
		ctx.Row(2, 0)
		if Button(ctx, "Yes") {
			ans = Yes
		}
		if Button(ctx, "No") {
			ans = No
		}
		ctx.Flow()
		ctx.EndModal()
	}
	if ans == Pending && (ctx.ModalShouldClose() || ctx.Input().Key == ui.KeyEscape) {
		ans = No
	}
	if ans != Pending {
		*open = false
		ctx.CloseModal()
	}
	return ans
}
