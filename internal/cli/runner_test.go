package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/tareas/internal/model"
	"github.com/idilsaglam/tareas/internal/shell"
	"github.com/idilsaglam/tareas/internal/store/jsonstore"
	"github.com/idilsaglam/tareas/internal/tasklist"
)

type result struct {
	code           int
	stdout, stderr string
}

func run(t *testing.T, file, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, Options{
		File:   file,
		Theme:  "mono",
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func tasksIn(t *testing.T, file string) []model.Task {
	t.Helper()
	tl, err := tasklist.New(file)
	if err != nil {
		t.Fatalf("tasklist.New: %v", err)
	}
	return tl.Tasks()
}

func TestSubcommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")

	if r := run(t, file, "", "add", "comprar", "leche"); r.code != 0 {
		t.Fatalf("add: code %d, stderr %q", r.code, r.stderr)
	}
	if r := run(t, file, "", "add", "pasear"); r.code != 0 {
		t.Fatalf("add: code %d, stderr %q", r.code, r.stderr)
	}
	if r := run(t, file, "", "done", "0"); r.code != 0 {
		t.Fatalf("done: code %d, stderr %q", r.code, r.stderr)
	}

	r := run(t, file, "", "ls")
	if r.code != 0 {
		t.Fatalf("ls: code %d", r.code)
	}
	for _, want := range []string{"0. comprar leche - Completada", "1. pasear - Pendiente", "Total 2", "1/2"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("ls missing %q:\n%s", want, r.stdout)
		}
	}

	if r := run(t, file, "", "rm", "0"); r.code != 0 {
		t.Fatalf("rm: code %d, stderr %q", r.code, r.stderr)
	}
	want := []model.Task{{Description: "pasear"}}
	if got := tasksIn(t, file); !reflect.DeepEqual(got, want) {
		t.Errorf("tasks = %+v, want %+v", got, want)
	}
}

func TestListEmpty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	r := run(t, file, "", "ls")
	if r.code != 0 || !strings.Contains(r.stdout, tasklist.EmptyMessage) {
		t.Errorf("code %d, stdout:\n%s", r.code, r.stdout)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("ls must not create the file")
	}
}

func TestUsageErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add without text", []string{"add"}, "usage: tareas add"},
		{"done without index", []string{"done"}, "usage: tareas done"},
		{"rm with two args", []string{"rm", "1", "2"}, "usage: tareas rm"},
		{"done not a number", []string{"done", "uno"}, "not a number"},
		{"done out of range", []string{"done", "3"}, shell.MsgNoTask},
		{"rm negative", []string{"rm", "-1"}, shell.MsgNoTask},
		{"unknown subcommand", []string{"frobnicate"}, "unknown subcommand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, file, "", tt.args...)
			if r.code != 2 {
				t.Errorf("code = %d, want 2", r.code)
			}
			if !strings.Contains(r.stderr, tt.want) {
				t.Errorf("stderr missing %q:\n%s", tt.want, r.stderr)
			}
		})
	}
}

func TestMalformedFileIsFatal(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	if err := os.WriteFile(file, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	for _, args := range [][]string{{"ls"}, {"add", "x"}, {}} {
		r := run(t, file, "5\n", args...)
		if r.code != 1 {
			t.Errorf("%v: code = %d, want 1", args, r.code)
		}
		if !strings.Contains(r.stderr, jsonstore.ErrMalformed.Error()) {
			t.Errorf("%v: stderr = %q", args, r.stderr)
		}
	}
	b, err := os.ReadFile(file)
	if err != nil || string(b) != "not json" {
		t.Errorf("malformed file must be left alone, got %q, %v", b, err)
	}
}

func TestDefaultIsMenu(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	r := run(t, file, "1\nleer\n3\n5\n")
	if r.code != 0 {
		t.Fatalf("code %d, stderr %q", r.code, r.stderr)
	}
	for _, want := range []string{shell.MsgTitle, "0. leer - Pendiente", shell.MsgExit} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestHelp(t *testing.T) {
	r := run(t, "", "", "help")
	if r.code != 0 || !strings.Contains(r.stdout, "Usage:") {
		t.Errorf("code %d, stdout %q", r.code, r.stdout)
	}
}

func TestListGrouped(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	for _, d := range []string{"uno", "dos", "tres"} {
		if r := run(t, file, "", "add", d); r.code != 0 {
			t.Fatalf("add: code %d, stderr %q", r.code, r.stderr)
		}
	}
	if r := run(t, file, "", "done", "1"); r.code != 0 {
		t.Fatalf("done: code %d", r.code)
	}

	r := run(t, file, "", "ls", "-group")
	if r.code != 0 {
		t.Fatalf("ls -group: code %d, stderr %q", r.code, r.stderr)
	}
	order := []string{"Pendientes", "0. uno - Pendiente", "2. tres - Pendiente", "Completadas", "1. dos - Completada"}
	pos := -1
	for _, want := range order {
		i := strings.Index(r.stdout, want)
		if i < 0 {
			t.Fatalf("missing %q:\n%s", want, r.stdout)
		}
		if i < pos {
			t.Errorf("%q out of order:\n%s", want, r.stdout)
		}
		pos = i
	}
}

func TestListGroupedEmptySection(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	if r := run(t, file, "", "add", "uno"); r.code != 0 {
		t.Fatalf("add: code %d", r.code)
	}
	r := run(t, file, "", "ls", "-group")
	if !strings.Contains(r.stdout, "(ninguna)") {
		t.Errorf("empty done section not marked:\n%s", r.stdout)
	}
}

func TestListBadArgs(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	for _, args := range [][]string{{"ls", "-nope"}, {"ls", "extra"}} {
		if r := run(t, file, "", args...); r.code != 2 {
			t.Errorf("%v: code = %d, want 2", args, r.code)
		}
	}
}

func TestTUIUsesProvidedStreams(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tareas.json")
	if r := run(t, file, "", "add", "uno"); r.code != 0 {
		t.Fatalf("add: code %d", r.code)
	}
	r := run(t, file, "q", "tui")
	if r.code != 0 {
		t.Fatalf("tui: code %d, stderr %q", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "uno") {
		t.Errorf("tui did not draw to the provided output:\n%q", r.stdout)
	}
}
