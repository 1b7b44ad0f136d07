//go:build go1.21
// +build go1.21

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, b *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(b.String())
	if line == "" {
		t.Fatal("expected a log line, got none")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	return m
}

func TestNewJSON(t *testing.T) {
	var b bytes.Buffer
	l := NewJSON(&b, LevelDebug)
	if l.level != LevelDebug {
		t.Error("Expected level to be LevelDebug, got ", l.level)
	}
	if l.log == nil {
		t.Error("logger not initialized")
	}
}

func TestJSONDebugf(t *testing.T) {
	var b bytes.Buffer
	l := NewJSON(&b, LevelDebug)

	l.Debugf("test %s", "foo")
	m := decodeLine(t, &b)
	if m["msg"] != "test foo" {
		t.Errorf("Debugf() failed, expected message: %s, got %v", "test foo", m["msg"])
	}

	b.Reset()
	l.level = LevelInfo
	l.Debugf("test %s", "foo")
	if b.String() != "" {
		t.Error("Debug message was not expected to be logged")
	}
}

func TestJSONDebugf_WithDefault(t *testing.T) {
	var b bytes.Buffer
	l := NewJSON(&b, 999)

	l.Debugf("test %s", "foo")
	m := decodeLine(t, &b)
	if m["msg"] != "test foo" {
		t.Errorf("Debugf() failed, expected message: %s, got %v", "test foo", m["msg"])
	}

	b.Reset()
	l.level = LevelInfo
	l.Debugf("test %s", "foo")
	if b.String() != "" {
		t.Error("Debug message was not expected to be logged")
	}
}

func TestJSONInfof(t *testing.T) {
	var b bytes.Buffer
	l := NewJSON(&b, LevelInfo)

	l.Infof("test %s", "foo")
	m := decodeLine(t, &b)
	if m["msg"] != "test foo" {
		t.Errorf("Infof() failed, expected message: %s, got %v", "test foo", m["msg"])
	}

	b.Reset()
	l.level = LevelWarn
	l.Infof("test %s", "foo")
	if b.String() != "" {
		t.Error("Info message was not expected to be logged")
	}
}

func TestJSONWarnf(t *testing.T) {
	var b bytes.Buffer
	l := NewJSON(&b, LevelWarn)

	l.Warnf("test %s", "foo")
	m := decodeLine(t, &b)
	if m["msg"] != "test foo" {
		t.Errorf("Warnf() failed, expected message: %s, got %v", "test foo", m["msg"])
	}

	b.Reset()
	l.level = LevelError
	l.Warnf("test %s", "foo")
	if b.String() != "" {
		t.Error("Warn message was not expected to be logged")
	}
}

func TestJSONErrorf(t *testing.T) {
	var b bytes.Buffer
	l := NewJSON(&b, LevelError)

	l.Errorf("test %s", "foo")
	m := decodeLine(t, &b)
	if m["msg"] != "test foo" {
		t.Errorf("Errorf() failed, expected message: %s, got %v", "test foo", m["msg"])
	}

	b.Reset()
	l.level = -99
	l.Errorf("test %s", "foo")
	if b.String() != "" {
		t.Error("Error message was not expected to be logged")
	}
}
