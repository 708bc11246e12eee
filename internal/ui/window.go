package ui

// window is the on-screen position of the frame. The terminal has no window
// manager, so the frame is drawn at (x, y) and moved by dragging its title bar.
type window struct {
	x, y int

	dragging     bool
	grabX, grabY int

	termW, termH int
	placed       bool
}

// startDrag records where inside the frame the pointer grabbed it.
func (w *window) startDrag(px, py int) {
	w.dragging = true
	w.grabX = px - w.x
	w.grabY = py - w.y
}

func (w *window) dragTo(px, py, outerW, outerH int) {
	if !w.dragging {
		return
	}
	w.x = px - w.grabX
	w.y = py - w.grabY
	w.clamp(outerW, outerH)
}

func (w *window) endDrag() {
	w.dragging = false
}

// resize records the terminal size. The first call centers the frame.
func (w *window) resize(termW, termH, outerW, outerH int) {
	w.termW, w.termH = termW, termH
	if !w.placed {
		w.x = (termW - outerW) / 2
		w.y = (termH - outerH) / 2
		w.placed = true
	}
	w.clamp(outerW, outerH)
}

func (w *window) clamp(outerW, outerH int) {
	if w.termW > 0 && w.x > w.termW-outerW {
		w.x = w.termW - outerW
	}
	if w.termH > 0 && w.y > w.termH-outerH {
		w.y = w.termH - outerH
	}
	if w.x < 0 {
		w.x = 0
	}
	if w.y < 0 {
		w.y = 0
	}
}
