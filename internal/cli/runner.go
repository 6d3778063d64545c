package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tareas/internal/logging"
	"github.com/idilsaglam/tareas/internal/model"
	"github.com/idilsaglam/tareas/internal/shell"
	"github.com/idilsaglam/tareas/internal/tasklist"
	"github.com/idilsaglam/tareas/internal/tui"
	"github.com/idilsaglam/tareas/internal/ui"
)

// Options carry everything a subcommand needs. Zero values fall back to
// the process streams and the default file.
type Options struct {
	File   string
	Theme  string
	Logger *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) fill() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

type runner struct {
	opt    Options
	out    *ui.Styles
	errOut *ui.Styles
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it starts the interactive menu.
func Run(args []string, opt Options) int {
	opt.fill()
	r := &runner{
		opt:    opt,
		out:    ui.New(opt.Stdout, opt.Theme),
		errOut: ui.New(opt.Stderr, opt.Theme),
	}

	cmd, a := "menu", []string(nil)
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "menu":
		return r.doMenu()

	case "tui":
		return r.doTUI()

	case "ls":
		fs := flag.NewFlagSet("ls", flag.ContinueOnError)
		fs.SetOutput(opt.Stderr)
		group := fs.Bool("group", false, "group output by pending/done")
		if err := fs.Parse(a); err != nil || fs.NArg() > 0 {
			r.fail("usage: tareas ls [-group]")
			return 2
		}
		return r.doList(*group)

	case "add":
		if len(a) == 0 {
			r.fail("usage: tareas add <descripción...>")
			return 2
		}
		return r.doAdd(strings.Join(a, " "))

	case "done":
		n, code := r.indexArg("done", a)
		if code != 0 {
			return code
		}
		return r.doIndexed(n, "completada", func(tl *tasklist.TaskList) error { return tl.MarkCompleted(n) })

	case "rm":
		n, code := r.indexArg("rm", a)
		if code != 0 {
			return code
		}
		return r.doIndexed(n, "eliminada", func(tl *tasklist.TaskList) error { return tl.Remove(n) })
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `tareas - a tiny task tracker

Usage:
  tareas [flags] [subcommand] [args]

Subcommands:
  (none) | menu        Interactive numbered menu
  tui                  Interactive list browser
  add <descripción...> Add a new task (words are joined with spaces)
  ls [-group]          List tasks, optionally split into pending and done
  done <index>         Mark the task at 0-based index as completed
  rm <index>           Remove the task at 0-based index

Flags:
  -file <path>         Task list file (default tareas.json)
  -config <path>       TOML config file (default ./tareas.toml when present)
  -theme <name>        classic, neon or mono
  -log-level <level>   debug, info, warn or error

Examples:
  tareas add "Comprar leche"
  tareas ls
  tareas done 0
  tareas rm 1
`)
}

// -------------- subcommand impls ----------------

func (r *runner) open() (*tasklist.TaskList, bool) {
	tl, err := tasklist.New(r.opt.File, tasklist.WithLogger(r.opt.Logger))
	if err != nil {
		r.fail(err.Error())
		return nil, false
	}
	return tl, true
}

func (r *runner) doMenu() int {
	tl, ok := r.open()
	if !ok {
		return 1
	}
	sh := shell.New(tl, r.opt.Stdin, r.opt.Stdout,
		shell.WithStyles(r.out),
		shell.WithLogger(r.opt.Logger),
	)
	if err := sh.Run(); err != nil {
		r.fail(err.Error())
		return 1
	}
	return 0
}

func (r *runner) doTUI() int {
	tl, ok := r.open()
	if !ok {
		return 1
	}
	if err := tui.Run(tl, r.out, r.opt.Stdin, r.opt.Stdout); err != nil {
		r.fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (r *runner) doList(group bool) int {
	tl, ok := r.open()
	if !ok {
		return 1
	}

	s := r.out
	d, p := tl.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		s.Title.Render("Tareas"),
		s.Success.Render(s.Theme.SymDone), d,
		s.Pending.Render(s.Theme.SymPending), p,
		s.Accent.Render("Total"), tl.Len(),
	)

	lines := []string{
		header,
		s.Muted.Render(ui.ProgressBar(d, d+p, 28)),
		"",
	}
	if group && tl.Len() > 0 {
		lines = append(lines, r.groupLines(tl.Tasks())...)
	} else {
		lines = append(lines, tl.Lines()...)
	}
	fmt.Fprintln(r.opt.Stdout, s.Panel(lines))
	return 0
}

func (r *runner) doAdd(desc string) int {
	tl, ok := r.open()
	if !ok {
		return 1
	}
	if err := tl.Add(desc); err != nil {
		r.fail(err.Error())
		return 1
	}
	r.out.OK(r.opt.Stdout, "tarea agregada")
	return 0
}

func (r *runner) doIndexed(n int, verb string, op func(*tasklist.TaskList) error) int {
	tl, ok := r.open()
	if !ok {
		return 1
	}
	if err := op(tl); err != nil {
		if errors.Is(err, tasklist.ErrNoTask) {
			r.fail(shell.MsgNoTask)
			hint := "Hint: the list is empty, add one with `tareas add`"
			if tl.Len() > 0 {
				hint = fmt.Sprintf("Hint: run `tareas ls` to see valid indexes (0-%d)", tl.Len()-1)
			}
			fmt.Fprintln(r.opt.Stderr, r.errOut.Muted.Render(hint))
			return 2
		}
		r.fail(err.Error())
		return 1
	}
	r.opt.Logger.Info("task updated", "index", n, "action", verb)
	r.out.OK(r.opt.Stdout, "tarea "+verb)
	return 0
}

func (r *runner) indexArg(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		r.fail("usage: tareas " + cmd + " <index>")
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		r.fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

func (r *runner) fail(msg string) {
	r.errOut.Fail(r.opt.Stderr, msg)
}

// -------------- rendering helpers --------------

// groupLines lists pending tasks, then completed ones. Each line keeps the
// task's position in the full list so it can be passed to done/rm.
func (r *runner) groupLines(tasks []model.Task) []string {
	var pend, done []string
	for i, t := range tasks {
		ln := fmt.Sprintf("%d. %s", i, t)
		if t.Completed {
			done = append(done, ln)
		} else {
			pend = append(pend, ln)
		}
	}
	section := func(title string, body []string) []string {
		out := []string{r.out.Accent.Render(title)}
		if len(body) == 0 {
			return append(out, r.out.Muted.Render("(ninguna)"))
		}
		return append(out, body...)
	}
	lines := section("Pendientes", pend)
	lines = append(lines, "")
	return append(lines, section("Completadas", done)...)
}
