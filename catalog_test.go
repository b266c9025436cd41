package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGradeFromFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"math-10-midterm.pdf", "10"},
		{"science-7-final.pdf", "7"},
		{"final.pdf", ""},
		// known quirk of the convention: a single hyphen keeps the extension
		{"algebra-7.pdf", "7.pdf"},
	}
	for _, tc := range cases {
		if got := gradeFromFilename(tc.name); got != tc.want {
			t.Errorf("gradeFromFilename(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestKeyBaseName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Algebra Test (Answer Key).pdf", "Algebra Test.pdf"},
		{"plain.pdf", "plain.pdf"},
	}
	for _, tc := range cases {
		if got := keyBaseName(tc.name); got != tc.want {
			t.Errorf("keyBaseName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHasPDFExt(t *testing.T) {
	if !hasPDFExt("exam.pdf") || !hasPDFExt("EXAM.PDF") {
		t.Error("expected .pdf match to be case-insensitive")
	}
	if hasPDFExt("exam.txt") || hasPDFExt("pdf") {
		t.Error("expected non-pdf names to be rejected")
	}
}

func TestListExams(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"math-10-midterm.pdf", "notes.txt", "History-9.PDF"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	a := &App{cfg: Config{ExamsDir: dir}}
	names, err := a.listExams()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 pdf files, got %v", names)
	}
}

func TestListExamsMissingDir(t *testing.T) {
	a := &App{cfg: Config{ExamsDir: filepath.Join(t.TempDir(), "nope")}}
	if _, err := a.listExams(); err == nil {
		t.Fatal("expected error for missing exam directory")
	}
}

func TestListAnswerKeys(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Algebra Test (Answer Key).pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := &App{cfg: Config{KeysDir: dir}}
	names, byBase := a.listAnswerKeys()
	if len(names) != 1 {
		t.Fatalf("expected 1 key file, got %v", names)
	}
	if got := byBase["Algebra Test.pdf"]; got != "Algebra Test (Answer Key).pdf" {
		t.Fatalf("base-name mapping wrong: %v", byBase)
	}
}

func TestListAnswerKeysMissingDir(t *testing.T) {
	a := &App{cfg: Config{KeysDir: filepath.Join(t.TempDir(), "nope")}}
	names, byBase := a.listAnswerKeys()
	if len(names) != 0 || len(byBase) != 0 {
		t.Fatal("expected empty listing for missing key directory")
	}
}
