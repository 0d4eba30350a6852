package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	testLogger := With(zap.String("key", "value"))
	if testLogger == nil {
		t.Error("With() returned nil logger")
	}
	testLogger.Info("test with")

	reqLogger := WithRequestID("test-id")
	if reqLogger == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	reqLogger.Info("test with request id")
}

func TestDevelopmentConfig(t *testing.T) {
	devConfig := Config{
		Level:  "debug",
		Output: "stdout",
	}

	if err := Init(devConfig, "development"); err != nil {
		t.Fatalf("Failed to initialize development logger: %v", err)
	}
	defer Sync()

	Info("Development logger initialized", zap.String("env", "development"))
	Debug("Debug message should appear")
	Warn("Warning message with fields", zap.String("component", "test"), zap.Int("value", 42))
}

func TestDynamicLogLevel(t *testing.T) {
	if err := Init(Config{Level: "debug", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Sync()

	Debug("This debug message should be visible")
	SetLevel("info")
	Debug("This debug message should NOT be visible")
	Info("Info message should still be visible")
	SetLevel("debug")
}

func TestFileOutput(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test_file.log")

	fileConfig := Config{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: testFile,
	}

	if err := Init(fileConfig, "production"); err != nil {
		t.Fatalf("Failed to initialize file logger: %v", err)
	}
	defer Sync()

	Info("File logger initialized")
	Error("Error message to file")
	for i := 0; i < 10; i++ {
		Info("Log entry for test", zap.Int("entry", i))
	}

	fileInfo, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Log file not created: %v", err)
	}
	if fileInfo.Size() == 0 {
		t.Fatal("Log file is empty")
	}
}

func TestProductionConfig(t *testing.T) {
	prodConfig := Config{
		Level:  "info",
		Output: "stdout",
	}

	if err := Init(prodConfig, "production"); err != nil {
		t.Fatalf("Failed to initialize production logger: %v", err)
	}
	defer Sync()

	Info("Production logger initialized", zap.String("env", "production"))
	Warn("Production warning with structured fields", zap.String("service", "storefront"))
}
