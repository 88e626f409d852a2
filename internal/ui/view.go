package ui

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/scrollfx/internal/anim"
	"github.com/atomicstack/scrollfx/internal/autoplay"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/surface"
	"github.com/atomicstack/scrollfx/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minBodyRows   = 3
	minSideWidth  = 8
	maxSideWidth  = 24
	maxFrameWidth = 48
	// listThreshold is the narrowest width that still shows the side lists.
	listThreshold = 48
)

// View renders the surface that currently owns the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	w := m.viewWidth()
	var out string
	switch {
	case m.overlay.IsOpen():
		out = m.viewOverlay(w)
	case m.primary.Mounted():
		out = m.viewPrimary(w)
	default:
		out = styles.Info.Render("no deck loaded")
	}
	if m.zone != nil {
		out = m.zone.Scan(out)
	}
	return out
}

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

// bodyRows is the height left for the surface body once the header, the
// optional progress bar, the status line and the optional footer are placed.
func (m *Model) bodyRows() int {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}
	used := 2
	if m.opts.Progress {
		used++
	}
	if m.opts.ShowFooter {
		used++
	}
	return max(h-used, minBodyRows)
}

func (m *Model) viewPrimary(w int) string {
	snap := m.primary.Snapshot()
	rows := m.bodyRows()
	lines := make([]string, 0, rows+4)
	lines = append(lines, headerLine(w, styles.Header.Render(m.deck.Title), styles.Counter.Render(snap.Counter())))
	if m.opts.Progress {
		lines = append(lines, m.progressLine(w, snap))
	}
	lines = append(lines, m.primaryBody(w, rows, snap)...)
	lines = append(lines, m.statusLine(w, snap))
	if m.opts.ShowFooter {
		lines = append(lines, m.footerLine(w, m.deck.Footer, false))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) progressLine(w int, snap surface.Snapshot) string {
	m.progress.Width = w
	if !snap.Ready {
		return m.progress.ViewAs(snap.Preload.Fraction())
	}
	return m.progress.ViewAs(snap.Progress)
}

func (m *Model) primaryBody(w, rows int, snap surface.Snapshot) []string {
	side := 0
	if w >= listThreshold {
		side = min(max(w/5, minSideWidth), maxSideWidth)
	}
	centreW := w - 2*side

	var centre []string
	switch {
	case m.jump != nil:
		centre = m.jumpPanel(centreW, rows)
	case m.help.ShowAll:
		centre = m.helpPanel(centreW, rows, m.keys)
	default:
		centre = m.centrePanel(centreW, rows, snap)
	}
	if side == 0 {
		return centre
	}
	left := m.sideList(true, side, rows, snap)
	right := m.sideList(false, side, rows, snap)
	out := make([]string, rows)
	for i := range rows {
		out[i] = left[i] + centre[i] + right[i]
	}
	return out
}

// sideList renders one of the two label columns. Items sit itemRows apart and
// the whole column is offset by the list track, which the animator moves to
// keep the active item centred.
func (m *Model) sideList(leftSide bool, width, rows int, snap surface.Snapshot) []string {
	out := blankRows(width, rows)
	reg := m.primary.Registry()
	track, prefix := reg.ListLeft, zoneLeftPrefix
	if !leftSide {
		track, prefix = reg.ListRight, zoneRightPrefix
	}
	itemRows := max(m.primary.Options().ItemRows, 1)
	base := int(math.Round(track.OffsetY))
	for i, s := range m.deck.Sections {
		y := base + i*itemRows
		if y < 0 || y >= rows {
			continue
		}
		layers := reg.At(i)
		el, label := layers.Left, s.LeftLabel
		if !leftSide {
			el, label = layers.Right, s.RightLabel
		}
		if label == "" {
			label = fmt.Sprintf("%02d", i+1)
		}
		active := i < len(snap.Active) && snap.Active[i]
		marker := "  "
		st := styles.ListItem
		if active {
			marker, st = "• ", styles.ListActive
		}
		shift := int(math.Round(math.Abs(el.OffsetX)))
		avail := max(width-2-shift, 1)
		text := runewidth.Truncate(marker+label, avail, "…")
		styled := theme.Faded(st, theme.Foreground, el.Opacity).Render(text)
		pad := strings.Repeat(" ", max(width-1-shift-runewidth.StringWidth(text), 0))
		var line string
		if leftSide {
			line = " " + strings.Repeat(" ", shift) + styled + pad
		} else {
			line = pad + styled + strings.Repeat(" ", shift) + " "
		}
		out[y] = m.mark(indexedZone(prefix, i), line)
	}
	return out
}

// visibleLayer picks the section whose background is most opaque, which is
// the incoming one for the second half of a crossfade.
func visibleLayer(reg *anim.Registry, fallback int) int {
	best, bestOpacity := fallback, -1.0
	for i := range reg.Len() {
		l := reg.At(i)
		if l.Media.Hidden {
			continue
		}
		if l.Media.Opacity > bestOpacity {
			best, bestOpacity = i, l.Media.Opacity
		}
	}
	return best
}

func (m *Model) centrePanel(width, rows int, snap surface.Snapshot) []string {
	reg := m.primary.Registry()
	idx := visibleLayer(reg, max(snap.Current, 0))
	s, ok := m.deck.At(idx)
	if !ok {
		return blankRows(width, rows)
	}
	layers := reg.At(idx)
	op := layers.Media.Opacity

	block := m.mediaFrame(s, m.primary.MediaErr(idx), width, layers.Media.Scale, op, snap.Ready)
	if title := titleLines(s, layers, width, 1); len(title) > 0 {
		block = append(block, "")
		block = append(block, title...)
	}
	if s.HasGallery() && idx == snap.Current {
		block = append(block, "", m.carouselLine(s), m.mark(zoneCollection, styles.Affordance.Render("view collection")))
	}
	drift := int(math.Round(layers.Media.OffsetY / 100 * float64(rows)))
	return placeBlock(block, width, rows, drift)
}

// mediaFrame renders the boxed media reference. scale above 1 widens the box
// the way the background zooms in while it settles.
func (m *Model) mediaFrame(s deck.Section, probeErr error, width int, scale, opacity float64, ready bool) []string {
	inner := min(width-4, maxFrameWidth)
	if inner < 4 {
		return nil
	}
	fw := min(int(math.Round(float64(inner)*scale)), width-2)
	name := mediaName(s.Media)
	status := ""
	switch {
	case probeErr != nil:
		status = theme.Faded(styles.MediaMissing, theme.Danger, opacity).Render("unavailable")
	case !ready:
		status = theme.Faded(styles.Loading, theme.Accent, opacity).Render("loading…")
	}
	content := theme.Faded(styles.Media, theme.Accent, opacity).Render(truncate.StringWithTail(name, uint(max(fw-2, 1)), "…"))
	if status != "" {
		content += "\n" + status
	}
	frame := styles.Frame.
		BorderForeground(theme.Blend(theme.Muted, theme.Background, opacity)).
		Width(fw).
		Align(lipgloss.Center).
		Render(content)
	return strings.Split(m.mark(zoneMedia, frame), "\n")
}

func (m *Model) carouselLine(s deck.Section) string {
	c := m.primary.Carousel()
	i := c.Index()
	if i >= len(s.Gallery) {
		i = 0
	}
	g := s.Gallery[i]
	label := g.Title
	if label == "" {
		label = mediaName(g.Media)
	}
	return styles.Thumb.Render("◂ ") + styles.ThumbActive.Render(label) +
		styles.Thumb.Render(fmt.Sprintf(" %d/%d ▸", i+1, len(s.Gallery)))
}

// titleLines wraps the section title and styles each word with its own
// animated opacity, scaled by the heading layer and alpha.
func titleLines(s deck.Section, layers *anim.Layers, width int, alpha float64) []string {
	words := s.Words()
	if len(words) == 0 || layers == nil || layers.Heading == nil {
		return nil
	}
	wrapper := wordwrap.NewWriter(max(width-4, 8))
	wrapper.Breakpoints = nil
	_, _ = wrapper.Write([]byte(strings.Join(words, " ")))
	_ = wrapper.Close()

	heading := layers.Heading.Opacity * alpha
	var out []string
	wi := 0
	for _, line := range strings.Split(wrapper.String(), "\n") {
		parts := strings.Fields(line)
		styled := make([]string, 0, len(parts))
		for range parts {
			if wi >= len(words) || wi >= len(layers.Words) {
				break
			}
			el := layers.Words[wi]
			a := heading * el.Opacity * (1 - clamp01(el.OffsetY/100))
			styled = append(styled, theme.Faded(styles.Title, theme.Foreground, a).Render(words[wi]))
			wi++
		}
		out = append(out, strings.Join(styled, " "))
	}
	return out
}

func (m *Model) jumpPanel(width, rows int) []string {
	j := m.jump
	lines := []string{j.input.View(), ""}
	visible := j.picker.Visible(m.jumpRows())
	if len(visible) == 0 {
		lines = append(lines, styles.FilterPlaceholder.Render("no matching sections"))
	}
	sel, hasSel := j.picker.Selected()
	for _, item := range visible {
		text := fmt.Sprintf("%02d  %s", item.Index+1, item.Label)
		text = runewidth.Truncate(text, max(width-4, 1), "…")
		if hasSel && item.Index == sel.Index {
			lines = append(lines, styles.SelectedItem.Render("› "+text))
			continue
		}
		lines = append(lines, styles.Filter.Render("  "+text))
	}
	out := blankRows(width, rows)
	for i, line := range limitHeight(lines, rows, width) {
		out[i] = fitWidth(" "+line, width)
	}
	return out
}

func (m *Model) helpPanel(width, rows int, keys help.KeyMap) []string {
	m.help.Width = width
	lines := strings.Split(m.help.View(keys), "\n")
	return placeBlock(lines, width, rows, 0)
}

func (m *Model) viewOverlay(w int) string {
	o := m.overlay
	snap := o.Snapshot()
	alpha := o.Opacity()
	rows := m.bodyRows()

	title := m.deck.Title
	if s, ok := m.primary.Section(); ok && s.Title != "" {
		title = s.Title
	}
	closeBtn := m.mark(zoneClose, styles.Close.Render("✕"))
	right := styles.Counter.Render(snap.Counter()) + "  " + closeBtn
	lines := make([]string, 0, rows+4)
	lines = append(lines, headerLine(w, theme.Faded(styles.Header, theme.Accent, alpha).Render(title), right))
	if m.opts.Progress {
		lines = append(lines, m.progressLine(w, snap))
	}

	stageRows := max(rows-2, 1)
	var stage []string
	if m.help.ShowAll {
		stage = m.helpPanel(w, stageRows, overlayKeys{m.keys})
	} else {
		stage = m.overlayStage(w, stageRows, alpha)
		stage = strings.Split(m.mark(zoneMedia, strings.Join(stage, "\n")), "\n")
	}
	lines = append(lines, stage...)
	lines = append(lines, "", m.thumbStrip(w, snap, alpha))
	lines = append(lines, m.statusLine(w, snap))
	if m.opts.ShowFooter {
		lines = append(lines, m.footerLine(w, "", true))
	}
	return strings.Join(lines, "\n")
}

// overlayStage composites the gallery items. Settled items are drawn first;
// items whose wrapper is still sliding are drawn over them, clipped to the
// revealed part of the stage.
func (m *Model) overlayStage(w, rows int, alpha float64) []string {
	o := m.overlay
	reg := o.Registry()
	canvas := blankRows(w, rows)
	var settled, moving []int
	for i := range reg.Len() {
		l := reg.At(i)
		if l.Media.Hidden {
			continue
		}
		if math.Abs(l.Outer.OffsetX) < 0.5 {
			settled = append(settled, i)
		} else {
			moving = append(moving, i)
		}
	}
	for _, i := range append(settled, moving...) {
		m.drawGalleryItem(canvas, i, w, rows, alpha)
	}
	return canvas
}

func (m *Model) drawGalleryItem(canvas []string, i, w, rows int, alpha float64) {
	o := m.overlay
	items := o.Items()
	l := o.Registry().At(i)
	if l == nil || i >= len(items) {
		return
	}
	outer := int(math.Round(l.Outer.OffsetX / 100 * float64(w)))
	from, to := 0, w
	switch {
	case outer > 0:
		from = min(outer, w)
	case outer < 0:
		to = max(w+outer, 0)
	}
	if from >= to {
		return
	}
	block := m.galleryBlock(items[i], i, l, w, rows, alpha)
	dx := int(math.Round(l.Media.OffsetX / 100 * float64(w)))
	for y := range rows {
		row := shiftRow(block[y], dx, w)
		canvas[y] = ansi.Cut(canvas[y], 0, from) + ansi.Cut(row, from, to) + ansi.Cut(canvas[y], to, w)
	}
}

func (m *Model) galleryBlock(s deck.Section, i int, l *anim.Layers, w, rows int, alpha float64) []string {
	snap := m.overlay.Snapshot()
	block := m.mediaFrame(s, m.overlay.MediaErr(i), w, 1, alpha*l.Media.Opacity, snap.Ready)
	if title := titleLines(s, l, w, alpha); len(title) > 0 {
		block = append(block, "")
		if l.Heading != nil {
			for range int(math.Round(l.Heading.OffsetY / 25)) {
				block = append(block, "")
			}
		}
		block = append(block, title...)
	}
	return placeBlock(block, w, rows, 0)
}

func (m *Model) thumbStrip(w int, snap surface.Snapshot, alpha float64) string {
	items := m.overlay.Items()
	parts := []string{m.mark(zoneArrowPrev, theme.Faded(styles.Arrow, theme.Accent, alpha).Render("‹"))}
	for i := range items {
		st, fg := styles.Thumb, theme.Muted
		if i == snap.Current {
			st, fg = styles.ThumbActive, theme.Accent
		}
		label := fmt.Sprintf("%02d", i+1)
		parts = append(parts, m.mark(indexedZone(zoneThumbPrefix, i), theme.Faded(st, fg, alpha).Render(label)))
	}
	parts = append(parts, m.mark(zoneArrowNext, theme.Faded(styles.Arrow, theme.Accent, alpha).Render("›")))
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, strings.Join(parts, " "))
}

func (m *Model) statusLine(w int, snap surface.Snapshot) string {
	var line string
	switch {
	case m.errMsg != "":
		line = styles.Error.Render(m.errMsg)
	case !snap.Ready && snap.Surface != "":
		p := snap.Preload
		line = m.spinner.View() + " " + styles.Loading.Render(fmt.Sprintf("loading media %d/%d · %s",
			p.Resolved, p.Total, humanize.Bytes(uint64(max(p.Bytes, 0)))))
	case m.infoMsg != "":
		line = styles.Info.Render(m.infoMsg)
	default:
		text := autoplayLabel(snap.Autoplay)
		if snap.Preload.Bytes > 0 {
			text += " · " + humanize.Bytes(uint64(snap.Preload.Bytes))
		}
		if snap.Preload.Failed > 0 {
			text += fmt.Sprintf(" · %d unavailable", snap.Preload.Failed)
		}
		line = styles.Status.Render(text)
	}
	return fitWidth(line, w)
}

func autoplayLabel(s autoplay.State) string {
	switch {
	case !s.Enabled:
		return "autoplay off"
	case s.Paused || !s.Visible:
		return "autoplay paused"
	}
	return "autoplay every " + s.Interval.String()
}

func (m *Model) footerLine(w int, text string, overlay bool) string {
	m.help.Width = w
	var keys help.KeyMap = m.keys
	if overlay {
		keys = overlayKeys{m.keys}
	}
	h := m.help.ShortHelpView(keys.ShortHelp())
	if text == "" {
		return fitWidth(h, w)
	}
	return fitWidth(styles.Footer.Render(text)+"  "+h, w)
}

func headerLine(w int, left, right string) string {
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return fitWidth(left, w)
	}
	return left + strings.Repeat(" ", gap) + right
}

// placeBlock centres lines horizontally and vertically inside a width x rows
// area, moved down by drift rows. Lines falling outside are clipped.
func placeBlock(lines []string, width, rows, drift int) []string {
	out := blankRows(width, rows)
	top := (rows-len(lines))/2 + drift
	for i, line := range lines {
		y := top + i
		if y < 0 || y >= rows {
			continue
		}
		out[y] = fitWidth(lipgloss.PlaceHorizontal(width, lipgloss.Center, line), width)
	}
	return out
}

func shiftRow(row string, dx, w int) string {
	dx = max(min(dx, w), -w)
	switch {
	case dx > 0:
		return strings.Repeat(" ", dx) + ansi.Truncate(row, w-dx, "")
	case dx < 0:
		return ansi.Cut(row, -dx, w) + strings.Repeat(" ", -dx)
	}
	return row
}

func blankRows(width, rows int) []string {
	out := make([]string, max(rows, 0))
	blank := strings.Repeat(" ", max(width, 0))
	for i := range out {
		out[i] = blank
	}
	return out
}

func limitHeight(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	trimmed := append([]string(nil), lines[:maxLines]...)
	trimmed[maxLines-1] = truncateText("…", width)
	return trimmed
}

// fitWidth truncates s to w cells and pads it so every row is exactly w wide.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

func mediaName(ref string) string {
	if ref == "" {
		return "no media"
	}
	return path.Base(ref)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
