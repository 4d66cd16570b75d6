// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdhender/grpsum/inputs"
	"github.com/mdhender/grpsum/renderer"
	"github.com/mdhender/grpsum/web/handlers"
	"github.com/spf13/afero"
)

func run(t *testing.T, fs afero.Fs, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cmdRoot(fs)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func memInput(t *testing.T, data string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, inputs.DefaultPath, []byte(data), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return fs
}

func TestRoot_PrintsBothParts(t *testing.T) {
	fs := memInput(t, "1000\n2000\n3000\n\n4000\n\n5000\n6000\n\n7000\n8000\n9000\n\n10000\n")

	stdout, _, err := run(t, fs)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "Part 1: 24000\nPart 2: 45000\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRoot_MissingInput(t *testing.T) {
	stdout, _, err := run(t, afero.NewMemMapFs())
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestRoot_MalformedLine(t *testing.T) {
	fs := memInput(t, "1\n\nabc\n")

	_, stderr, err := run(t, fs)
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(stderr, inputs.DefaultPath+":3:1: error:") {
		t.Errorf("expected diagnostic on stderr, got %q", stderr)
	}

	stdout, _, err := run(t, fs, "--skip-malformed")
	if err != nil {
		t.Fatalf("run --skip-malformed: %v", err)
	}
	if want := "Part 1: 1\nPart 2: 1\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRoot_RejectsArguments(t *testing.T) {
	if _, _, err := run(t, memInput(t, "1\n"), "other.input"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRoot_RecordsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	fs := memInput(t, "5\n\n6\n")

	if _, _, err := run(t, fs, "init-db", dbPath); err != nil {
		t.Fatalf("init-db: %v", err)
	}
	for i := 0; i < 2; i++ {
		stdout, _, err := run(t, fs, "--db", dbPath, "--show-db-stats")
		if err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		if want := "Part 1: 6\nPart 2: 11\n"; stdout != want {
			t.Errorf("run %d: stdout = %q, want %q", i+1, stdout, want)
		}
	}
}

func TestRoot_RecordedContentIsStillParsed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	fs := memInput(t, "1\n\nabc\n")

	if _, _, err := run(t, fs, "init-db", dbPath); err != nil {
		t.Fatalf("init-db: %v", err)
	}
	if _, _, err := run(t, fs, "--db", dbPath, "--skip-malformed"); err != nil {
		t.Fatalf("run --skip-malformed: %v", err)
	}

	stdout, stderr, err := run(t, fs, "--db", dbPath)
	if err == nil {
		t.Fatal("expected error for malformed line in recorded content")
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
	if !strings.Contains(stderr, inputs.DefaultPath+":3:1: error:") {
		t.Errorf("expected diagnostic on stderr, got %q", stderr)
	}
}

func TestRoot_WhitespaceLines(t *testing.T) {
	fs := memInput(t, "1\n \n2\n\n4\n")

	if _, _, err := run(t, fs); err == nil {
		t.Fatal("expected error for whitespace-only line")
	}

	stdout, _, err := run(t, fs, "--blank-whitespace")
	if err != nil {
		t.Fatalf("run --blank-whitespace: %v", err)
	}
	if want := "Part 1: 4\nPart 2: 7\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRoot_Overflow(t *testing.T) {
	fs := memInput(t, "9223372036854775807\n1\n")

	stdout, stderr, err := run(t, fs)
	if err == nil {
		t.Fatal("expected error for overflowing group sum")
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
	if !strings.Contains(stderr, inputs.DefaultPath+":2:1: error:") {
		t.Errorf("expected diagnostic on stderr, got %q", stderr)
	}
}

func TestHTML(t *testing.T) {
	fs := memInput(t, "1\n2\n\n3\n")

	if _, _, err := run(t, fs, "html", "out.html", "--show-values"); err != nil {
		t.Fatalf("html: %v", err)
	}
	data, err := afero.ReadFile(fs, "out.html")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<dd id="part-2">6</dd>`) {
		t.Errorf("unexpected page %s", data)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, afero.NewMemMapFs(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Error("expected version on stdout")
	}
}

func TestRoutes(t *testing.T) {
	sqlStore, err := openStore("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer sqlStore.Close()

	fs := memInput(t, "1\n2\n\n3\n")
	cmd := cmdRoot(fs)
	if _, err := ingest(context.Background(), cmd, fs, sqlStore, ingestFlags{autoEOL: true}, false); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	r, err := renderer.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	ts := httptest.NewServer(routes(handlers.New(sqlStore, r)))
	defer ts.Close()

	for path, want := range map[string]string{
		"/":        `<dd id="part-1">3</dd>`,
		"/top?n=1": `"sum":3`,
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s: get: %v", path, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("%s: read: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d", path, resp.StatusCode)
		}
		if !strings.Contains(string(body), want) {
			t.Errorf("%s: expected %q in %s", path, want, body)
		}
	}
}
