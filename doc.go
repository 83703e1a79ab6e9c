// Package termselect reads the selected text of a terminal session together with the
// rendering attributes of every selected character and writes it as a JSON report.
//
// It is meant for debugging how a terminal or a program styles its output: select some
// text, run an inspection, and look at the runs of uniformly styled characters.
//
// # Quick Start
//
// Capture some output and inspect a selection of it:
//
//	capture := termselect.NewCapture(termselect.WithCaptureSize(24, 80))
//	capture.WriteString("plain \x1b[1mbold\x1b[0m\n")
//
//	sel := termselect.NewSelection(
//		termselect.Coordinate{Col: 0, Row: 0},
//		termselect.Coordinate{Col: 10, Row: 0},
//	)
//	host := termselect.NewReplayHost(capture, sel, "")
//
//	inspector, _ := termselect.NewInspector(termselect.WithOutputPath("out.json"))
//	report, _ := inspector.Run(ctx, host)
//
// # Architecture
//
//   - [Host]: a terminal session that exposes its selection, its rows and an identifier.
//     [ReplayHost] serves captured output; the tmux subpackage reads a live tmux pane.
//   - [Capture]: decodes an ANSI byte stream into styled lines. Rows are numbered
//     relative to the viewport, so scrollback rows are negative.
//   - [ComputeLineResults]: slices the selection out of each row and partitions it into
//     [StyleRun] values of uniform [Style].
//   - [Report]: the JSON document, either the success shape with line results or the
//     failure shape with an error message.
//   - [Inspector]: runs the whole pipeline, writes the report and prints a summary.
//
// # Colors
//
// A [Color] is classified once, when a host's data is ingested: explicit 24-bit colors
// become [ColorRGB], palette references (including the 16 ANSI colors) become
// [ColorIndexed], and the terminal default becomes [ColorNone], encoded as JSON null.
// Anything else is kept as [ColorUnknown] with its string form.
//
// # Screenshots
//
// [RenderScreenshot] draws the selected runs of a report to an image using the same
// colors, which helps spot attribute mismatches at a glance.
package termselect
