package render

import (
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rtab/internal/listing"
	"github.com/kk-code-lab/rtab/internal/listing/listingtest"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func fakeListing(t *testing.T, dir string, names ...string) (*listing.Cache, *listing.Listing) {
	t.Helper()
	fake := listingtest.New()
	fake.AddDir(dir, names...)
	cache := listing.NewCache(listing.WithReader(fake.ReadDir))
	l, err := cache.GetOrCreate(dir, listing.SortConfig{DirectoriesFirst: true})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	return cache, l
}

func TestFitText(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{"fits without truncation", "file.txt", 20, "file.txt"},
		{"adds ellipsis when needed", "verylongname", 6, "veryl…"},
		{"only ellipsis when width too small", "example", 1, "…"},
		{"multi-byte characters respected", "你好世界", 5, "你好…"},
		{"returns empty when width is zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.fitText(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestTextWidth(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.textWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}
	if got := r.textWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func TestComputeLayoutFollowsRatio(t *testing.T) {
	m := computeLayout(82, [3]int{1, 3, 4}, true)
	if m.parentWidth != 10 || m.previewWidth != 40 || m.currentWidth != 30 {
		t.Fatalf("unexpected widths: %+v", m)
	}
	if m.currentX != 11 || m.previewX != 42 {
		t.Fatalf("unexpected offsets: %+v", m)
	}
}

func TestComputeLayoutFoldsHiddenPreviewIntoCurrent(t *testing.T) {
	m := computeLayout(81, [3]int{1, 3, 4}, false)
	if m.previewWidth != 0 {
		t.Fatalf("preview should be hidden: %+v", m)
	}
	if m.parentWidth+m.currentWidth+columnGap != 81 {
		t.Fatalf("columns should fill the width: %+v", m)
	}
}

func TestComputeLayoutWithoutParentColumn(t *testing.T) {
	m := computeLayout(40, [3]int{0, 1, 1}, true)
	if m.parentWidth != 0 || m.currentX != 0 {
		t.Fatalf("parent column should be absent: %+v", m)
	}
}

func TestFormatTitlePath(t *testing.T) {
	if got := formatTitlePath("/home/ann/src", "/home/ann", true); got != "~/src" {
		t.Fatalf("got %q", got)
	}
	if got := formatTitlePath("/home/ann", "/home/ann", true); got != "~" {
		t.Fatalf("got %q", got)
	}
	if got := formatTitlePath("/home/annex", "/home/ann", true); got != "/home/annex" {
		t.Fatalf("prefix match must respect separators, got %q", got)
	}
	if got := formatTitlePath("/home/ann/src", "/home/ann", false); got != "/home/ann/src" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0B",
		1023:            "1023B",
		1024:            "1K",
		1536:            "1.5K",
		5 * 1024 * 1024: "5M",
	}
	for in, want := range tests {
		if got := formatSize(in); got != want {
			t.Fatalf("formatSize(%d)=%q want %q", in, got, want)
		}
	}
}

func TestPreviewPaneReplacesContent(t *testing.T) {
	_, l := fakeListing(t, "/d", "a")
	pane := NewPreviewPane()

	pane.ShowListing(l)
	pane.ShowError("denied")
	if pane.Kind() != PaneError || pane.Listing() != nil || pane.Message() != "denied" {
		t.Fatalf("error should replace listing: %+v", pane)
	}
	pane.ShowText([]string{"x"})
	if pane.Kind() != PaneText || pane.Message() != "" {
		t.Fatalf("text should replace error: %+v", pane)
	}
	pane.Clear()
	if pane.Kind() != PaneEmpty || pane.Lines() != nil {
		t.Fatalf("clear should empty pane: %+v", pane)
	}
}

func TestRenderDrawsColumnsAndStatus(t *testing.T) {
	screen := newSimScreen(t, 60, 10)
	_, parent := fakeListing(t, "/home", "ann/", "bob/")
	parent.SetCursor(parent.IndexOf("ann"))
	_, current := fakeListing(t, "/home/ann", "docs/", "notes.txt", "todo.txt")
	current.SetSelected(current.IndexOf("todo.txt"), true)

	pane := NewPreviewPane()
	pane.ShowText([]string{"hello preview"})

	view := &View{
		Cwd:             "/home/ann",
		Home:            "/home/ann",
		TildeInTitlebar: true,
		Parent:          parent,
		Current:         current,
		Preview:         pane,
		ShowPreview:     true,
		ColumnRatio:     [3]int{1, 3, 4},
		ScrollOffset:    2,
		Message:         "Finished: rm x y",
		Hints:           []KeyHint{{Keys: "e", Desc: "edit"}},
	}
	NewRenderer(screen).Render(view)

	if header := rowText(screen, 0); !strings.HasPrefix(header, "~") {
		t.Fatalf("header should abbreviate home: %q", header)
	}
	body := rowText(screen, 1) + rowText(screen, 2) + rowText(screen, 3)
	for _, want := range []string{"ann/", "docs/", "notes.txt", "*todo.txt", "hello preview"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	status := rowText(screen, 8)
	if !strings.Contains(status, "Finished: rm x y") || !strings.Contains(status, "1 selected") {
		t.Fatalf("status line: %q", status)
	}
	if footer := rowText(screen, 9); !strings.Contains(footer, "e: edit") {
		t.Fatalf("footer: %q", footer)
	}
}

func TestRenderShowsPreviewError(t *testing.T) {
	screen := newSimScreen(t, 80, 6)
	_, current := fakeListing(t, "/srv", "locked/")
	pane := NewPreviewPane()
	pane.ShowText([]string{"stale text"})
	pane.ShowError("/srv/locked: " + os.ErrPermission.Error())

	NewRenderer(screen).Render(&View{
		Cwd:         "/srv",
		Current:     current,
		Preview:     pane,
		ShowPreview: true,
		ColumnRatio: [3]int{1, 3, 4},
	})

	row := rowText(screen, 1)
	if !strings.Contains(row, "permission denied") {
		t.Fatalf("expected error in preview column: %q", row)
	}
	if strings.Contains(row, "stale text") {
		t.Fatalf("stale preview still visible: %q", row)
	}
}

func TestRenderTabStripOnlyWithSeveralTabs(t *testing.T) {
	screen := newSimScreen(t, 40, 5)
	r := NewRenderer(screen)

	r.Render(&View{Cwd: "/tmp", TabLabels: []string{"1"}, ColumnRatio: [3]int{1, 3, 4}})
	if header := rowText(screen, 0); !strings.HasPrefix(header, "/tmp") {
		t.Fatalf("single tab should not draw a strip: %q", header)
	}

	r.Render(&View{Cwd: "/tmp", TabLabels: []string{"1", "2"}, ActiveTab: 1, ColumnRatio: [3]int{1, 3, 4}})
	if header := rowText(screen, 0); !strings.HasPrefix(header, " 1  2  /tmp") {
		t.Fatalf("tab strip: %q", header)
	}
}

func TestRenderHelpOverlayListsCommands(t *testing.T) {
	screen := newSimScreen(t, 50, 30)
	NewRenderer(screen).Render(&View{
		ShowHelp: true,
		Hints:    []KeyHint{{Keys: "o", Desc: "Open with default app"}},
	})

	var all strings.Builder
	for y := 0; y < 30; y++ {
		all.WriteString(rowText(screen, y))
		all.WriteByte('\n')
	}
	if !strings.Contains(all.String(), "Open with default app") {
		t.Fatalf("help overlay missing command hint:\n%s", all.String())
	}
}

func TestBuildFooterHelpTextEmpty(t *testing.T) {
	if got := buildFooterHelpText(nil); got != "" {
		t.Fatalf("expected empty footer, got %q", got)
	}
}
