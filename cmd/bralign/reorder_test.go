package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bralign/internal/errors"
	"bralign/internal/report"
)

// chdir is the pre-Go 1.24 equivalent of t.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Error(err)
		}
	})
}

func libRecord(path, name string) string {
	return path + "\n{" + name + ": " + path + "}"
}

func moduleBlock(name string, libs ...string) string {
	var b strings.Builder
	b.WriteString(report.ModuleMarker)
	b.WriteString("\n")
	b.WriteString("Module Name:          " + name + "\n")
	if len(libs) > 0 {
		b.WriteString(report.LibraryOpenMarker)
		b.WriteString("\n")
		for _, lib := range libs {
			b.WriteString(lib)
			b.WriteString("\n")
		}
		b.WriteString(report.LibraryCloseRule)
		b.WriteString("\n")
	}
	return b.String()
}

func writeReport(t *testing.T, dir, name string, blocks ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	text := "Build Report\n" + strings.Join(blocks, "")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReorderCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	refPath := writeReport(t, dir, "ref.txt",
		moduleBlock("X", libRecord("c.inf", "C"), libRecord("a.inf", "A")),
		moduleBlock("Y"),
		moduleBlock("Z"),
	)
	targetPath := writeReport(t, dir, "target.txt",
		moduleBlock("Y"),
		moduleBlock("X",
			libRecord("a.inf", "A"),
			libRecord("b.inf", "B"),
			libRecord("c.inf", "C"),
		),
		moduleBlock("W"),
	)

	rootCmd.SetArgs([]string{"reorder", "--no-history", refPath, targetPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	driver, err := report.ParseFile(driverOutputName)
	if err != nil {
		t.Fatalf("driver output unparseable: %v", err)
	}
	if want := []string{"X", "Y", "W"}; !reflect.DeepEqual(driver.Order, want) {
		t.Errorf("driver Order = %v, want %v", driver.Order, want)
	}
	// Driver-only output keeps each block's library order untouched.
	if libs := report.Libraries(driver.Blocks["X"]); libs[0].Name != "A" {
		t.Errorf("driver output library order changed: first = %s", libs[0].Name)
	}

	driverLib, err := report.ParseFile(driverLibOutputName)
	if err != nil {
		t.Fatalf("driver+lib output unparseable: %v", err)
	}
	if want := []string{"X", "Y", "W"}; !reflect.DeepEqual(driverLib.Order, want) {
		t.Errorf("driver+lib Order = %v, want %v", driverLib.Order, want)
	}
	var names []string
	for _, lib := range report.Libraries(driverLib.Blocks["X"]) {
		names = append(names, lib.Name)
	}
	if want := []string{"C", "A", "B"}; !reflect.DeepEqual(names, want) {
		t.Errorf("library order = %v, want %v", names, want)
	}
}

func TestReorderCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	refPath := writeReport(t, dir, "ref.txt", moduleBlock("A"))

	rootCmd.SetArgs([]string{"reorder", "--no-history", refPath, filepath.Join(dir, "missing.txt")})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if code := errors.CodeOf(err); code != errors.FileNotFound {
		t.Errorf("code = %s, want FILE_NOT_FOUND", code)
	}
}

func TestRequireFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "here.txt")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := requireFiles(existing); err != nil {
		t.Errorf("requireFiles() error = %v", err)
	}

	err := requireFiles(existing, filepath.Join(dir, "gone.txt"))
	if err == nil {
		t.Fatal("requireFiles() expected error")
	}
	if code := errors.CodeOf(err); code != errors.FileNotFound {
		t.Errorf("code = %s, want FILE_NOT_FOUND", code)
	}
	if !strings.Contains(err.Error(), "gone.txt") {
		t.Errorf("error should name the missing file: %v", err)
	}
}
