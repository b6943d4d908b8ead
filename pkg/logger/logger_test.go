package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	Init()
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}

	t.Setenv("LOG_LEVEL", "nonsense")
	Init()
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info for an invalid value", Log.GetLevel())
	}
}

func TestFor_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
	defer Silence()

	For("fov").Info("hello")
	if !strings.Contains(buf.String(), "component=fov") {
		t.Errorf("log line %q missing component", buf.String())
	}

	buf.Reset()
	Silence()
	For("fov").Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Silence() still wrote %q", buf.String())
	}
}
