package doublegen_test

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Versent/go-foundationtest/internal/cmd/doublegen"
	"github.com/Versent/go-foundationtest/internal/stubgen"
)

func TestSetFlags(t *testing.T) {
	f := flag.NewFlagSet("doublegen", flag.ContinueOnError)
	doublegen.NewGenCmd(nil, f)
	expected := []string{"header", "prefix", "tags"}
	f.VisitAll(func(f *flag.Flag) {
		if len(expected) == 0 {
			t.Errorf("unexpected flag %q", f.Name)
			return
		}

		var got, want string
		got, want, expected = f.Name, expected[0], expected[1:]
		if got != want {
			t.Errorf("unexpected name, got %q, want %q", got, want)
		}
	})
	if len(expected) > 0 {
		t.Errorf("missing flags %q", expected)
	}
}

func TestGenCmd(t *testing.T) {
	cmd := &doublegen.GenCmd{}
	assert.Equal(t, "gen", cmd.Name())
	assert.NotEmpty(t, cmd.Synopsis())
	assert.Contains(t, cmd.Usage(), "gen [-header file] [-prefix name] [-tags buildtags] [package ...]")
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/plain\n\ngo 1.21\n"), 0o666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.go"), []byte("package plain\n\ntype Adapter interface{ Focus() }\n"), 0o666))

	var buf bytes.Buffer
	l := log.New(&buf, "", 0)
	f := flag.NewFlagSet("doublegen", flag.ContinueOnError)
	cmd := doublegen.NewGenCmd(l, f)
	require.NoError(t, f.Parse(nil))

	status := cmd.Execute(context.Background(), f, stubgen.WithDir(dir))
	assert.Equal(t, subcommands.ExitSuccess, status, buf.String())
	assert.NoFileExists(t, filepath.Join(dir, "double_gen.go"))
}

func TestExecute_missingHeader(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf, "", 0)
	f := flag.NewFlagSet("doublegen", flag.ContinueOnError)
	cmd := doublegen.NewGenCmd(l, f)
	require.NoError(t, f.Parse([]string{"-header", filepath.Join(t.TempDir(), "missing.txt")}))

	status := cmd.Execute(context.Background(), f)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, buf.String(), "failed to read header file")
}
