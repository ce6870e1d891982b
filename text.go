package easel

import "github.com/hajimehoshi/ebiten/v2"

// Text is the text payload of a KindText object. Easel owns the content and
// the editing state; measuring, wrapping, and glyph rendering stay with the
// host's renderer.
type Text struct {
	Content  string
	Align    TextAlign
	Editable bool

	// SelStart, SelEnd are the live selection as rune indexes into Content,
	// valid while the owning object is in editing. Equal values mean a bare
	// caret at that index.
	SelStart, SelEnd int

	editing bool
}

// Editing reports whether the owning object is currently in text editing.
func (t *Text) Editing() bool {
	return t.editing
}

func (t *Text) clampedSelection(n int) (int, int) {
	start := clampInt(t.SelStart, 0, n)
	end := clampInt(t.SelEnd, 0, n)
	if end < start {
		start, end = end, start
	}
	return start, end
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewText creates an editable text object. The side-middle controls resize
// the body width instead of scaling it, so text reflows rather than
// stretches; everything else keeps the default control layout.
func NewText(name, content string, width, height float64) *Object {
	o := NewObject(name, width, height)
	o.Kind = KindText
	o.Text = &Text{Content: content, Editable: true}
	for _, side := range [2]string{"ml", "mr"} {
		if ctl, ok := o.Controls.Get(side); ok {
			ctl.ActionName = ActionResize
			ctl.Handler = resizeHandler
		}
	}
	return o
}

// SetText replaces the object's text content outside an edit session,
// clamping any live selection to the new length. Listeners see one text
// changed pair; reactors watching the text key fire once.
func (o *Object) SetText(content string) {
	if o.Text == nil {
		panic("easel: SetText on an object without a text payload")
	}
	if content == o.Text.Content {
		return
	}
	if c := o.canvasRef(); c != nil {
		ev := &Event{Kind: EventTextChanged, Target: o}
		c.fire(ev, func() {
			o.applyText(content)
		})
		return
	}
	o.applyText(content)
}

func (o *Object) applyText(content string) {
	o.setProp(PropText, &o.Text.Content, content)
	n := len([]rune(content))
	o.Text.SelStart, o.Text.SelEnd = o.Text.clampedSelection(n)
}

// --- Editing lifecycle ---

// EditingTarget returns the object currently in text editing, or nil.
func (c *Canvas) EditingTarget() *Object {
	return c.editing
}

// EnterEditing puts an editable text object into editing with the caret at
// the end. Double clicking an editable text body does this by default. The
// entered pair can veto; any other edit session exits first.
func (c *Canvas) EnterEditing(o *Object) bool {
	if o == nil || o.Text == nil || !o.Text.Editable || c.editing == o {
		return false
	}
	if c.editing != nil && !c.ExitEditing() {
		return false
	}
	ev := &Event{Kind: EventTextEditingEntered, Target: o}
	return c.fire(ev, func() {
		c.editing = o
		o.Text.editing = true
		n := len([]rune(o.Text.Content))
		o.Text.SelStart, o.Text.SelEnd = n, n
		c.requestRender()
	})
}

// ExitEditing ends the current edit session. Clicking outside the edited
// object does this by default. Reports whether a session ended; a vetoed
// exited pair keeps the session alive.
func (c *Canvas) ExitEditing() bool {
	o := c.editing
	if o == nil {
		return false
	}
	ev := &Event{Kind: EventTextEditingExited, Target: o}
	return c.fire(ev, func() {
		c.editing = nil
		o.Text.editing = false
		c.requestRender()
	})
}

// InsertText replaces the edited object's text selection with s, leaving the
// caret after the insertion. No-op outside an edit session.
func (c *Canvas) InsertText(s string) {
	o := c.editing
	if o == nil || s == "" {
		return
	}
	runes := []rune(o.Text.Content)
	start, end := o.Text.clampedSelection(len(runes))
	ins := []rune(s)
	out := make([]rune, 0, len(runes)-(end-start)+len(ins))
	out = append(out, runes[:start]...)
	out = append(out, ins...)
	out = append(out, runes[end:]...)
	caret := start + len(ins)
	c.editText(o, string(out), caret, caret)
}

// DeleteBackward removes the selection, or the rune before the caret.
func (c *Canvas) DeleteBackward() {
	o := c.editing
	if o == nil {
		return
	}
	runes := []rune(o.Text.Content)
	start, end := o.Text.clampedSelection(len(runes))
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	c.deleteRange(o, runes, start, end)
}

// DeleteForward removes the selection, or the rune after the caret.
func (c *Canvas) DeleteForward() {
	o := c.editing
	if o == nil {
		return
	}
	runes := []rune(o.Text.Content)
	start, end := o.Text.clampedSelection(len(runes))
	if start == end {
		if end == len(runes) {
			return
		}
		end++
	}
	c.deleteRange(o, runes, start, end)
}

func (c *Canvas) deleteRange(o *Object, runes []rune, start, end int) {
	out := make([]rune, 0, len(runes)-(end-start))
	out = append(out, runes[:start]...)
	out = append(out, runes[end:]...)
	c.editText(o, string(out), start, start)
}

// editText is the single mutation point for edit-session content changes:
// one text changed pair per actual change, reactors fire through the
// property plumbing, and the selection lands where the edit left it.
func (c *Canvas) editText(o *Object, content string, selStart, selEnd int) {
	if content == o.Text.Content {
		c.SetTextSelection(selStart, selEnd)
		return
	}
	ev := &Event{Kind: EventTextChanged, Target: o}
	c.fire(ev, func() {
		o.setProp(PropText, &o.Text.Content, content)
		o.Text.SelStart, o.Text.SelEnd = selStart, selEnd
	})
}

// SetTextSelection moves the edited object's caret and selection, clamping
// to the content. Emits one selection changed pair when the range actually
// moves.
func (c *Canvas) SetTextSelection(start, end int) {
	o := c.editing
	if o == nil {
		return
	}
	t := o.Text
	n := len([]rune(t.Content))
	start = clampInt(start, 0, n)
	end = clampInt(end, 0, n)
	if end < start {
		start, end = end, start
	}
	if start == t.SelStart && end == t.SelEnd {
		return
	}
	ev := &Event{Kind: EventTextSelectionChanged, Target: o}
	c.fire(ev, func() {
		t.SelStart, t.SelEnd = start, end
		c.requestRender()
	})
}

// --- Keyboard routing ---

// editingKeys are the non-character keys the canvas handles while editing.
// Order matters: editKeyState tracks previous-frame state by index.
var editingKeys = [...]ebiten.Key{
	ebiten.KeyBackspace,
	ebiten.KeyDelete,
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyHome,
	ebiten.KeyEnd,
	ebiten.KeyEnter,
	ebiten.KeyEscape,
}

// editKeyState tracks previous-frame key state so each press acts once.
// There is no key repeat; hosts that want it drive InsertText and the
// delete methods themselves.
type editKeyState struct {
	prev  [len(editingKeys)]bool
	chars []rune
}

// processEditingKeys feeds typed characters and editing keys to the live
// edit session. Called from Canvas.Update after pointer routing.
func (c *Canvas) processEditingKeys() {
	if c.editing == nil {
		for i := range c.editKeys.prev {
			c.editKeys.prev[i] = false
		}
		return
	}

	c.editKeys.chars = ebiten.AppendInputChars(c.editKeys.chars[:0])
	if len(c.editKeys.chars) > 0 {
		c.InsertText(string(c.editKeys.chars))
	}

	shift := readModifiers()&ModShift != 0
	for i, k := range editingKeys {
		down := ebiten.IsKeyPressed(k)
		just := down && !c.editKeys.prev[i]
		c.editKeys.prev[i] = down
		if !just {
			continue
		}
		switch k {
		case ebiten.KeyBackspace:
			c.DeleteBackward()
		case ebiten.KeyDelete:
			c.DeleteForward()
		case ebiten.KeyArrowLeft:
			c.moveCaret(-1, shift)
		case ebiten.KeyArrowRight:
			c.moveCaret(1, shift)
		case ebiten.KeyHome:
			c.moveCaretTo(0, shift)
		case ebiten.KeyEnd:
			c.moveCaretTo(len([]rune(c.editing.Text.Content)), shift)
		case ebiten.KeyEnter:
			c.InsertText("\n")
		case ebiten.KeyEscape:
			c.ExitEditing()
		}
	}
}

// moveCaret steps the caret, extending the selection when shift is held.
// Without shift a non-empty selection collapses to its edge in the step
// direction.
func (c *Canvas) moveCaret(delta int, extend bool) {
	o := c.editing
	if o == nil {
		return
	}
	t := o.Text
	n := len([]rune(t.Content))
	if extend {
		c.SetTextSelection(t.SelStart, clampInt(t.SelEnd+delta, 0, n))
		return
	}
	caret := t.SelEnd
	if t.SelStart != t.SelEnd {
		if delta < 0 {
			caret = t.SelStart
		}
	} else {
		caret = clampInt(t.SelEnd+delta, 0, n)
	}
	c.SetTextSelection(caret, caret)
}

func (c *Canvas) moveCaretTo(pos int, extend bool) {
	o := c.editing
	if o == nil {
		return
	}
	if extend {
		c.SetTextSelection(o.Text.SelStart, pos)
		return
	}
	c.SetTextSelection(pos, pos)
}
