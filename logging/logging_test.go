package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/minetower/parameter"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	log, closeFn, err := Setup(false, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	log.Info("discarded")
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("Expected no log files when debug=false, found %d", len(entries))
	}
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, closeFn, err := Setup(true, dir)
	if err != nil {
		t.Fatal(err)
	}

	log.Info("test log message")
	closeFn()

	data, err := os.ReadFile(filepath.Join(dir, parameter.LogFileName))
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"test log message"`) {
		t.Errorf("Expected JSON log line, got %q", string(data))
	}
}

func TestSetup_Rotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, parameter.LogFileName)

	if err := os.WriteFile(logPath, make([]byte, parameter.MaxLogSize+1), 0o644); err != nil {
		t.Fatal(err)
	}

	_, closeFn, err := Setup(true, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != parameter.LogFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > parameter.MaxLogSize {
		t.Errorf("Expected fresh log file, got %d bytes", info.Size())
	}
}

func TestRotate_SmallFileKept(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, parameter.LogFileName)
	if err := os.WriteFile(logPath, []byte("small"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rotate(logPath, parameter.MaxLogSize); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Errorf("Small file must not rotate, found %d entries", len(entries))
	}
}
