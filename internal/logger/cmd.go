package logger

import (
	"bytes"
	"context"
	"os/exec"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerWriter forwards subprocess output lines into a zap logger
type loggerWriter struct {
	logger *zap.Logger
	level  zapcore.Level
}

func (w loggerWriter) Write(p []byte) (n int, err error) {
	var lines []string
	if bytes.Contains(p, []byte{'\n'}) {
		lineBytes := bytes.Split(p, []byte{'\n'})
		lines = make([]string, 0, len(lineBytes))
		for _, line := range lineBytes {
			if len(line) != 0 {
				lines = append(lines, string(line))
			}
		}
	} else {
		lines = []string{string(p)}
	}
	for _, line := range lines {
		if ce := w.logger.Check(w.level, line); ce != nil {
			ce.Write()
		}
	}
	return len(p), nil
}

// Command builds an exec.Cmd whose stdout and stderr stream line-wise into
// the global logger. Used for the build, synth, and deploy subprocesses so
// their output carries the same structure as the rest of the tool's logs.
func Command(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return CommandWithLevels(ctx, zapcore.InfoLevel, zapcore.WarnLevel, name, arg...)
}

// CommandWithLevels is Command with explicit levels for the child process
// stdout and stderr streams.
func CommandWithLevels(ctx context.Context, stdoutLevel, stderrLevel zapcore.Level, name string, arg ...string) *exec.Cmd {
	root := GetLogger().Named(name)
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Stdout = &loggerWriter{logger: root.Named("stdout"), level: stdoutLevel}
	cmd.Stderr = &loggerWriter{logger: root.Named("stderr"), level: stderrLevel}
	return cmd
}
