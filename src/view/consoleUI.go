package view

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifechain/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings
	//fillers maps the state names of the area legend to the drawn chars
	fillers    map[string]string
	deadFiller string
	//cellStats is the description of the last clicked cell
	cellStats atomic.Pointer[string]
}

const (
	viewHeader        = "header"
	viewConfiguration = "configuration"
	viewStatus        = "status"
	viewField         = "battlefield"
	viewHelp          = "help"

	leftColumnWidth = 28
	minWindowHeight = 20
	headerHeight    = 3
	helpHeight      = 5
)

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the interactive terminal viewer
func NewViewTerminal() (*ConsoleUI, error) {

	var err error
	t := ConsoleUI{
		fillers: map[string]string{
			universe.Alive.String(): aurora.Green("█").BgBrightGreen().String(),
			universe.Red.String():   aurora.Red("█").BgBrightRed().String(),
			universe.Green.String(): aurora.Green("█").BgBrightGreen().String(),
			universe.Blue.String():  aurora.Blue("█").BgBrightBlue().String(),
		},
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("creating terminal ui: %w", err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.command(universe.Universe.Step), ""},
		{'r', "R", "Run", t.command(universe.Universe.Run), ""},
		{'s', "S", "Stop", t.command(universe.Universe.Stop), ""},
		{'c', "C", "Clear", t.command(universe.Universe.Clear), ""},
		{'w', "W", "Settle with random", t.command(universe.Universe.SettleWithRandomData), ""},
		{'p', "P", "Settle the pattern", t.command(universe.Universe.SettlePattern), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, viewField},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("binding %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		slog.Error("terminal ui stopped", "err", err)
	}
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.u.Area())
	t.renderConfiguration()
	t.renderStatus()
}

//renderField redraws the whole field, rows and columns beyond the view are cut
//and the last visible row is replaced with a warning
func (t *ConsoleUI) renderField(a universe.Area) {
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View(viewField)
		if e != nil {
			return e
		}
		v.Clear()

		maxW, maxH := v.Size()
		maxW, maxH = max(maxW, 0), max(maxH, 0)
		rows := min(len(a.Entities), maxH)
		cropped := a.Width > maxW || a.Height > maxH
		lines := make([]string, 0, rows)
		for i := 0; i < rows; i++ {
			if cropped && i == maxH-1 {
				lines = append(lines, aurora.Red("The field size is larger than the viewing area").BgBlack().String())
				break
			}
			var b strings.Builder
			for _, cell := range a.Entities[i][:min(len(a.Entities[i]), maxW)] {
				b.WriteString(t.filler(a.Legend, cell))
			}
			lines = append(lines, b.String())
		}
		_, _ = fmt.Fprint(v, strings.Join(lines, "\n"))
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	lines := []string{
		t.renderProp("Step", "%v", s.IterationNum),
		t.renderProp("Live Cells", "%v", s.LiveCells),
		t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)),
		t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]),
	}
	//the classic game has a single state, it is the live cells count
	if len(s.Population) > 1 {
		for _, name := range sortedKeys(s.Population) {
			lines = append(lines, t.renderProp(name, "%v", s.Population[name]))
		}
	}
	if stats := t.cellStats.Load(); stats != nil {
		lines = append(lines, " "+*stats)
	}
	t.write(viewStatus, lines)
}

func (t *ConsoleUI) renderConfiguration() {
	c := t.u.Options()
	t.write(viewConfiguration, []string{
		t.renderProp("Dimension", "%v x %v", c.Width, c.Height),
		t.renderProp("Interval", "%v", c.Interval),
		t.renderProp("Iterations", "%v steps", c.MaxSteps),
		t.renderProp("Engine", "%v", c.Advanced["engine"]),
	})
}

//write replaces the content of the named view, it is safe to call from any goroutine
func (t *ConsoleUI) write(name string, lines []string) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View(name); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, strings.Join(lines, "\n"))
		}
		return nil
	})
}

//filler returns the chars drawn for the cell state e
func (t *ConsoleUI) filler(legend []string, e uint8) string {
	if e == 0 || int(e) >= len(legend) {
		return t.deadFiller
	}
	if f, ok := t.fillers[legend[e]]; ok {
		return f
	}
	return t.deadFiller
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//panel is a view of the layout, render fills it when it is created
type panel struct {
	name           string
	title          string
	x0, y0, x1, y1 int
	render         func()
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minWindowHeight {
		for _, name := range []string{viewConfiguration, viewStatus, viewField, viewHelp} {
			_ = g.DeleteView(name)
		}
		return t.header(g, maxY, "Terminal height too small")
	}
	if err := t.header(g, headerHeight, fmt.Sprintf("The Life game simulation: %v", t.u.Options().Advanced["engine"])); err != nil {
		return err
	}

	middle := headerHeight + (maxY-helpHeight-headerHeight)/2
	panels := []panel{
		{viewConfiguration, "Configuration", 0, headerHeight, leftColumnWidth, middle, t.renderConfiguration},
		{viewStatus, "Status", 0, middle + 1, leftColumnWidth, maxY - helpHeight, t.renderStatus},
		{viewField, "Battle Field", leftColumnWidth + 1, headerHeight, maxX - 1, maxY - helpHeight, nil},
	}
	for _, p := range panels {
		v, err := g.SetView(p.name, p.x0, p.y0, p.x1, p.y1)
		if err == nil {
			continue
		}
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = p.title
		v.Frame = true
		if p.render != nil {
			p.render()
		}
	}
	//the field follows the view size, so it is drawn on every layout
	t.renderField(t.u.Area())

	if v, err := g.SetView(viewHelp, -1, maxY-helpHeight, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		keys := make([]string, 0, len(t.k))
		for _, k := range t.k {
			keys = append(keys, aurora.Green(k.name).String()+": "+k.descr)
		}
		_, _ = fmt.Fprintln(v, "KEYBINDINGS: "+strings.Join(keys, ", "))
	}
	return nil
}

//header draws text centered in a colored band of the given height
func (t *ConsoleUI) header(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(viewHeader, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	indent := max(0, (maxX-len(text))/2)
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", indent)+text)
	return nil
}

//command adapts a universe control to a key handler
func (t *ConsoleUI) command(f func(universe.Universe)) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		f(t.u)
		return nil
	}
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

//cmdMouseClick toggles the clicked cell and shows its neighbourhood in the status view
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	if err := t.u.InverseCell(cy, cx); err != nil {
		//the click was outside the field
		return nil
	}
	if stats, err := t.u.CellStats(cy, cx); err == nil {
		t.cellStats.Store(&stats)
	}
	t.renderStatus()
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
