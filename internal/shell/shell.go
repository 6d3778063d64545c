// Package shell runs the numbered interactive menu over a task list.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tareas/internal/logging"
	"github.com/idilsaglam/tareas/internal/tasklist"
	"github.com/idilsaglam/tareas/internal/ui"
)

// Menu choices.
const (
	ChoiceAdd = iota + 1
	ChoiceComplete
	ChoiceShow
	ChoiceRemove
	ChoiceExit
)

// User-facing messages.
const (
	MsgTitle         = "Gestor de Tareas Pendientes"
	MsgPrompt        = "Seleccione una opción: "
	MsgAskDesc       = "Ingrese la descripción de la tarea: "
	MsgAskComplete   = "Ingrese el número de la tarea a marcar como completada: "
	MsgAskRemove     = "Ingrese el número de la tarea a eliminar: "
	MsgNotANumber    = "Por favor, ingrese un número válido."
	MsgNoTask        = "Error: No existe una tarea en la posición especificada."
	MsgInvalidOption = "Opción no válida. Por favor, intente de nuevo."
	MsgExit          = "Saliendo del gestor de tareas."
)

var menuItems = []struct {
	choice int
	label  string
}{
	{ChoiceAdd, "Agregar tarea"},
	{ChoiceComplete, "Marcar tarea como completada"},
	{ChoiceShow, "Mostrar todas las tareas"},
	{ChoiceRemove, "Eliminar tarea"},
	{ChoiceExit, "Salir"},
}

// Result tells the loop whether to keep going after a dispatch.
type Result int

const (
	Continue Result = iota
	Quit
)

// Shell is the state of one interactive session.
type Shell struct {
	list   *tasklist.TaskList
	in     *bufio.Reader
	inErr  error
	out    io.Writer
	styles *ui.Styles
	log    *log.Logger
}

type Option func(*Shell)

// WithStyles overrides the default classic styles.
func WithStyles(s *ui.Styles) Option {
	return func(sh *Shell) {
		if s != nil {
			sh.styles = s
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(sh *Shell) {
		if l != nil {
			sh.log = l
		}
	}
}

func New(list *tasklist.TaskList, in io.Reader, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{
		list:   list,
		in:     bufio.NewReader(in),
		out:    out,
		styles: ui.New(out, "classic"),
		log:    logging.Discard(),
	}
	for _, o := range opts {
		o(sh)
	}
	return sh
}

// Run shows the menu until the user exits or input ends. Only persistence
// failures and read errors are returned.
func (sh *Shell) Run() error {
	for {
		sh.printMenu()
		line, ok := sh.readLine(MsgPrompt)
		if !ok {
			return sh.inputErr()
		}
		choice, err := parseInt(line)
		if err != nil {
			fmt.Fprintln(sh.out, MsgNotANumber)
			continue
		}
		res, err := sh.Dispatch(choice)
		if err != nil {
			return err
		}
		if res == Quit {
			return sh.inputErr()
		}
	}
}

// Dispatch runs one menu selection, prompting for any argument it needs.
func (sh *Shell) Dispatch(choice int) (Result, error) {
	sh.log.Debug("dispatch", "choice", choice)
	switch choice {
	case ChoiceAdd:
		desc, ok := sh.readLine(MsgAskDesc)
		if !ok {
			return Quit, nil
		}
		if err := sh.list.Add(desc); err != nil {
			return Continue, err
		}
	case ChoiceComplete:
		return sh.withIndex(MsgAskComplete, sh.list.MarkCompleted)
	case ChoiceShow:
		for _, ln := range sh.list.Lines() {
			fmt.Fprintln(sh.out, ln)
		}
	case ChoiceRemove:
		return sh.withIndex(MsgAskRemove, sh.list.Remove)
	case ChoiceExit:
		fmt.Fprintln(sh.out, MsgExit)
		return Quit, nil
	default:
		fmt.Fprintln(sh.out, MsgInvalidOption)
	}
	return Continue, nil
}

// withIndex reads a position and applies op to it. Bad input and unknown
// positions are reported and leave the list alone.
func (sh *Shell) withIndex(prompt string, op func(int) error) (Result, error) {
	line, ok := sh.readLine(prompt)
	if !ok {
		return Quit, nil
	}
	idx, err := parseInt(line)
	if err != nil {
		fmt.Fprintln(sh.out, MsgNotANumber)
		return Continue, nil
	}
	if err := op(idx); err != nil {
		if errors.Is(err, tasklist.ErrNoTask) {
			sh.log.Debug("rejected index", "index", idx, "len", sh.list.Len())
			fmt.Fprintln(sh.out, sh.styles.Error.Render(MsgNoTask))
			return Continue, nil
		}
		return Continue, err
	}
	return Continue, nil
}

func (sh *Shell) printMenu() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, sh.styles.Title.Render(MsgTitle))
	for _, it := range menuItems {
		label := it.label
		if it.choice == ChoiceRemove {
			label = sh.styles.Error.Render(label)
		}
		fmt.Fprintf(sh.out, "%s %s\n", sh.styles.Accent.Render(strconv.Itoa(it.choice)), label)
	}
}

// readLine reads one whole line of any length. A final line without a
// newline still counts; after it readLine reports end of input.
func (sh *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(sh.out, prompt)
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			sh.inErr = err
		}
		if line == "" {
			fmt.Fprintln(sh.out)
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

func (sh *Shell) inputErr() error {
	if sh.inErr != nil {
		return fmt.Errorf("read input: %w", sh.inErr)
	}
	return nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
