package termselect

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// decoderHandler receives the callbacks of the ANSI decoder on behalf of a Capture.
// The Capture lock is held by Write for the whole decode, so methods touch state directly.
type decoderHandler struct {
	c *Capture
}

// Input writes a character at the cursor.
func (h *decoderHandler) Input(r rune) {
	h.c.put(r)
}

// LineFeed ends the current line with a hard EOL. Input is treated as newline mode, so the
// cursor also returns to column 0 and plain "\n" streams stay flat.
func (h *decoderHandler) LineFeed() {
	h.c.current().wrapped = false
	h.c.newLine()
}

// CarriageReturn moves the cursor to column 0.
func (h *decoderHandler) CarriageReturn() {
	h.c.col = 0
}

// Backspace moves the cursor one column left.
func (h *decoderHandler) Backspace() {
	if h.c.col > 0 {
		h.c.col--
	}
}

// Tab advances to the n-th next tab stop.
func (h *decoderHandler) Tab(n int) {
	for i := 0; i < max(n, 1); i++ {
		next := (h.c.col/tabWidth + 1) * tabWidth
		if h.c.wrap && next >= h.c.cols {
			next = h.c.cols - 1
		}
		h.c.col = next
	}
}

// MoveForwardTabs advances n tab stops.
func (h *decoderHandler) MoveForwardTabs(n int) {
	h.Tab(n)
}

// MoveBackwardTabs moves back n tab stops.
func (h *decoderHandler) MoveBackwardTabs(n int) {
	for i := 0; i < max(n, 1); i++ {
		if h.c.col == 0 {
			return
		}
		h.c.col = ((h.c.col - 1) / tabWidth) * tabWidth
	}
}

// Goto moves the cursor to a viewport position.
func (h *decoderHandler) Goto(row, col int) {
	h.c.gotoRow(row)
	h.GotoCol(col)
}

// GotoLine moves the cursor to a viewport row, keeping the column.
func (h *decoderHandler) GotoLine(row int) {
	h.c.gotoRow(row)
}

// GotoCol moves the cursor to a column of the current line.
func (h *decoderHandler) GotoCol(col int) {
	h.c.col = clamp(col, 0, h.c.cols-1)
}

// MoveUp moves the cursor up n viewport rows.
func (h *decoderHandler) MoveUp(n int) {
	h.c.gotoRow(h.c.viewportRow() - max(n, 1))
}

// MoveDown moves the cursor down n viewport rows.
func (h *decoderHandler) MoveDown(n int) {
	h.c.gotoRow(h.c.viewportRow() + max(n, 1))
}

// MoveUpCr moves up n rows to column 0.
func (h *decoderHandler) MoveUpCr(n int) {
	h.MoveUp(n)
	h.c.col = 0
}

// MoveDownCr moves down n rows to column 0.
func (h *decoderHandler) MoveDownCr(n int) {
	h.MoveDown(n)
	h.c.col = 0
}

// MoveForward moves the cursor right n columns.
func (h *decoderHandler) MoveForward(n int) {
	h.GotoCol(h.c.col + max(n, 1))
}

// MoveBackward moves the cursor left n columns.
func (h *decoderHandler) MoveBackward(n int) {
	h.GotoCol(h.c.col - max(n, 1))
}

// EraseChars blanks n cells starting at the cursor.
func (h *decoderHandler) EraseChars(n int) {
	h.c.erase(h.c.col, h.c.col+max(n, 1))
}

// ClearLine erases part of the current line. Erasing to the right drops the cells,
// so the line text ends at the cursor.
func (h *decoderHandler) ClearLine(mode ansicode.LineClearMode) {
	line := h.c.current()
	switch mode {
	case ansicode.LineClearModeRight:
		if h.c.col < len(line.cells) {
			line.cells = line.cells[:h.c.col]
		}
	case ansicode.LineClearModeLeft:
		h.c.erase(0, h.c.col+1)
	case ansicode.LineClearModeAll:
		line.cells = nil
	}
}

// DeleteChars removes n cells at the cursor, shifting the rest left.
func (h *decoderHandler) DeleteChars(n int) {
	line := h.c.current()
	if h.c.col >= len(line.cells) {
		return
	}
	end := min(h.c.col+max(n, 1), len(line.cells))
	line.cells = append(line.cells[:h.c.col], line.cells[end:]...)
}

// InsertBlank inserts n blank cells at the cursor.
func (h *decoderHandler) InsertBlank(n int) {
	line := h.c.current()
	if h.c.col >= len(line.cells) {
		return
	}
	blanks := make([]Cell, max(n, 1))
	for i := range blanks {
		blanks[i] = blankCell()
	}
	rest := append(blanks, line.cells[h.c.col:]...)
	line.cells = append(line.cells[:h.c.col], rest...)
}

// SetTerminalCharAttribute applies an SGR attribute to the template used for new input.
func (h *decoderHandler) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	t := &h.c.template

	switch attr.Attr {
	case ansicode.CharAttributeReset:
		*t = Style{}

	case ansicode.CharAttributeBold:
		t.Bold = true
	case ansicode.CharAttributeDim:
		t.Faint = true
	case ansicode.CharAttributeItalic:
		t.Italic = true
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		t.Underline = true
	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		t.Blink = true
	case ansicode.CharAttributeReverse:
		t.Inverse = true
	case ansicode.CharAttributeHidden:
		t.Invisible = true
	case ansicode.CharAttributeStrike:
		t.Strikethrough = true

	case ansicode.CharAttributeCancelBold:
		t.Bold = false
	case ansicode.CharAttributeCancelBoldDim:
		t.Bold = false
		t.Faint = false
	case ansicode.CharAttributeCancelItalic:
		t.Italic = false
	case ansicode.CharAttributeCancelUnderline:
		t.Underline = false
	case ansicode.CharAttributeCancelBlink:
		t.Blink = false
	case ansicode.CharAttributeCancelReverse:
		t.Inverse = false
	case ansicode.CharAttributeCancelHidden:
		t.Invisible = false
	case ansicode.CharAttributeCancelStrike:
		t.Strikethrough = false

	case ansicode.CharAttributeForeground:
		t.Fg = classifyColor(attr)
	case ansicode.CharAttributeBackground:
		t.Bg = classifyColor(attr)
	}
}

// ResetState drops all lines and attributes.
func (h *decoderHandler) ResetState() {
	h.c.lines = []*capturedLine{{}}
	h.c.row = 0
	h.c.col = 0
	h.c.template = Style{}
}

// Substitute writes '?' in place of a corrupted character.
func (h *decoderHandler) Substitute() {
	h.c.put('?')
}

// Sequences below do not change line content or character styles.

func (h *decoderHandler) ApplicationCommandReceived(data []byte) {}
func (h *decoderHandler) Bell() {}
func (h *decoderHandler) ClearScreen(mode ansicode.ClearMode) {}
func (h *decoderHandler) ClearTabs(mode ansicode.TabulationClearMode) {}
func (h *decoderHandler) ClipboardLoad(clipboard byte, terminator string) {}
func (h *decoderHandler) ClipboardStore(clipboard byte, data []byte) {}
func (h *decoderHandler) CellSizePixels() {}
func (h *decoderHandler) ConfigureCharset(ansicode.CharsetIndex, ansicode.Charset) {}
func (h *decoderHandler) Decaln() {}
func (h *decoderHandler) DeleteLines(n int) {}
func (h *decoderHandler) DesktopNotification(payload *ansicode.NotificationPayload) {}
func (h *decoderHandler) DeviceStatus(n int) {}
func (h *decoderHandler) HorizontalTabSet() {}
func (h *decoderHandler) IdentifyTerminal(b byte) {}
func (h *decoderHandler) InsertBlankLines(n int) {}
func (h *decoderHandler) PopKeyboardMode(n int) {}
func (h *decoderHandler) PopTitle() {}
func (h *decoderHandler) PrivacyMessageReceived(data []byte) {}
func (h *decoderHandler) PushKeyboardMode(mode ansicode.KeyboardMode) {}
func (h *decoderHandler) PushTitle() {}
func (h *decoderHandler) ReportKeyboardMode() {}
func (h *decoderHandler) ReportModifyOtherKeys() {}
func (h *decoderHandler) ResetColor(i int) {}
func (h *decoderHandler) RestoreCursorPosition() {}
func (h *decoderHandler) ReverseIndex() {}
func (h *decoderHandler) SaveCursorPosition() {}
func (h *decoderHandler) ScrollDown(n int) {}
func (h *decoderHandler) ScrollUp(n int) {}
func (h *decoderHandler) SemanticPromptMark(ansicode.ShellIntegrationMark, int) {}
func (h *decoderHandler) SetActiveCharset(n int) {}
func (h *decoderHandler) SetColor(index int, c color.Color) {}
func (h *decoderHandler) SetCursorStyle(style ansicode.CursorStyle) {}
func (h *decoderHandler) SetDynamicColor(prefix string, index int, terminator string) {}
func (h *decoderHandler) SetHyperlink(hyperlink *ansicode.Hyperlink) {}
func (h *decoderHandler) SetKeyboardMode(ansicode.KeyboardMode, ansicode.KeyboardModeBehavior) {}
func (h *decoderHandler) SetKeypadApplicationMode() {}
func (h *decoderHandler) SetMode(mode ansicode.TerminalMode) {}
func (h *decoderHandler) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {}
func (h *decoderHandler) SetScrollingRegion(top, bottom int) {}
func (h *decoderHandler) SetTitle(title string) {}
func (h *decoderHandler) SetUserVar(name, value string) {}
func (h *decoderHandler) SetWorkingDirectory(uri string) {}
func (h *decoderHandler) ShellIntegrationMark(ansicode.ShellIntegrationMark, int) {}
func (h *decoderHandler) SixelReceived(params [][]uint16, data []byte) {}
func (h *decoderHandler) StartOfStringReceived(data []byte) {}
func (h *decoderHandler) TextAreaSizeChars() {}
func (h *decoderHandler) TextAreaSizePixels() {}
func (h *decoderHandler) UnsetKeypadApplicationMode() {}
func (h *decoderHandler) UnsetMode(mode ansicode.TerminalMode) {}
