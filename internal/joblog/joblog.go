// Package joblog writes the run's JSON-lines event sinks, one file per
// severity under day-stamped folders. A nil *Sink is a no-op so stages
// can log unconditionally before the sink is opened.
package joblog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Sink struct {
	info *zap.SugaredLogger
	err  *zap.SugaredLogger

	InfoPath  string
	ErrorPath string
}

// Open creates <root>/{Info_logs,Error_logs}/<YYYY-MM-DD>/ and a
// timestamped log file in each. Lines are {"Date","Content","Path"}
// objects; write failures fall back to stderr and are otherwise
// swallowed.
func Open(root string, now time.Time) (*Sink, error) {
	day := now.Format("2006-01-02")
	stamp := now.Format("20060102_150405")

	s := &Sink{
		InfoPath:  filepath.Join(root, "Info_logs", day, fmt.Sprintf("info_log_%v.json", stamp)),
		ErrorPath: filepath.Join(root, "Error_logs", day, fmt.Sprintf("error_log_%v.json", stamp)),
	}

	info, err := open(s.InfoPath)
	if err != nil {
		return nil, err
	}
	errLogger, err := open(s.ErrorPath)
	if err != nil {
		return nil, err
	}

	s.info = info.Sugar()
	s.err = errLogger.Sugar()
	return s, nil
}

func open(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey: "Content",
		TimeKey:    "Date",
		LevelKey:   zapcore.OmitKey,
		EncodeTime: func(t time.Time, e zapcore.PrimitiveArrayEncoder) {
			e.AppendString(t.Format("2006-01-02 15:04:05"))
		},
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(f)), zapcore.DebugLevel)

	return zap.New(core,
		zap.Fields(zap.String("Path", path)),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	), nil
}

func (s *Sink) Infof(template string, args ...interface{}) {
	if s == nil {
		return
	}
	s.info.Infof(template, args...)
}

func (s *Sink) Errorf(template string, args ...interface{}) {
	if s == nil {
		return
	}
	s.err.Errorf(template, args...)
}

func (s *Sink) Sync() {
	if s == nil {
		return
	}
	_ = s.info.Sync()
	_ = s.err.Sync()
}
