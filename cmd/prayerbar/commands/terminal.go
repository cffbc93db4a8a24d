package commands

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/borgmon/prayer-bar/pkg/alarm"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/schedule"
)

// terminalDisplay is the status indicator of the command line. It remembers
// the last status line and, when streaming, prints every change.
type terminalDisplay struct {
	mu     sync.Mutex
	out    io.Writer
	lang   string
	stream bool
	status string
}

func newTerminalDisplay(out io.Writer, lang string, stream bool) *terminalDisplay {
	return &terminalDisplay{out: out, lang: lang, stream: stream}
}

func (d *terminalDisplay) ShowActive(name, start, remaining string) {
	d.set(schedule.StatusLine(d.lang, name, remaining) + "  [since " + start + "]")
}

func (d *terminalDisplay) ShowUnavailable() {
	d.set(schedule.UnavailableLine(d.lang))
}

func (d *terminalDisplay) Hide() {
	d.set("")
}

func (d *terminalDisplay) ShowAllToday(day *models.ScheduleDay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	writeListing(d.out, day)
}

func (d *terminalDisplay) set(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if status == d.status {
		return
	}
	d.status = status
	if d.stream && status != "" {
		fmt.Fprintln(d.out, status)
	}
}

// Status returns the last status line, empty while hidden
func (d *terminalDisplay) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func writeListing(out io.Writer, day *models.ScheduleDay) {
	location, rows := schedule.Listing(day.Raw)
	fmt.Fprintf(out, "Location: %s\n", location)
	fmt.Fprintf(out, "Date: %s\n\n", day.Raw.Date)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.Label, row.Value)
	}
	w.Flush()
}

func writeWindows(out io.Writer, day *models.ScheduleDay, loc *time.Location) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WINDOW\tSTART\tEND\tLENGTH")
	for _, win := range day.Windows {
		length := "empty"
		if !win.Empty() {
			length = schedule.FormatRemaining(win.Duration())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			win.Name,
			win.Start.In(loc).Format("15:04"),
			win.End.In(loc).Format("15:04"),
			length,
		)
	}
	w.Flush()
}

func writeAlarms(out io.Writer, alarms []models.ArmedAlarm, loc *time.Location) {
	if len(alarms) == 0 {
		fmt.Fprintln(out, "No alarms left today")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALARM\tPRAYER\tAT")
	for _, a := range alarms {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Kind, a.Prayer, a.FireAt.In(loc).Format("15:04"))
	}
	w.Flush()
}

// terminalNotifier prints notifications with the time they were raised
type terminalNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	clock  alarm.Clock
	loc    *time.Location
}

func newTerminalNotifier(out, errOut io.Writer, clock alarm.Clock, loc *time.Location) *terminalNotifier {
	return &terminalNotifier{out: out, errOut: errOut, clock: clock, loc: loc}
}

func (n *terminalNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "[%s] %s\n", n.stamp(), message)
}

func (n *terminalNotifier) NotifyError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.errOut, "[%s] error: %s\n", n.stamp(), message)
}

func (n *terminalNotifier) stamp() string {
	return n.clock.Now().In(n.loc).Format("15:04")
}
