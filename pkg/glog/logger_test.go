package glog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetOutputAndLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(nil)

	level := GetLevel()
	defer SetLogLevel(level)
	SetLogLevel(zapcore.WarnLevel)

	Info("hidden message")
	Warn("visible message", zap.String("actor", "actor(1v1)"))
	Errorf("formatted %d", 7)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info 日志不应输出: %s", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "actor(1v1)") {
		t.Errorf("缺少 warn 日志: %s", out)
	}
	if !strings.Contains(out, "formatted 7") {
		t.Errorf("缺少格式化日志: %s", out)
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ptero.log")
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.PrintConsole = false
	cfg.Level = "debug"
	if err := Init(cfg); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	defer func() {
		_ = Init(consoleConfig())
	}()

	Debug("to file")
	_ = Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), `"M":"to file"`) {
		t.Errorf("日志文件内容不符: %s", data)
	}
}

func TestParseLevelFallback(t *testing.T) {
	if got := parseLevel("verbose"); got != zapcore.InfoLevel {
		t.Errorf("期望 info，实际 %v", got)
	}
	if got := parseLevel("error"); got != zapcore.ErrorLevel {
		t.Errorf("期望 error，实际 %v", got)
	}
}
