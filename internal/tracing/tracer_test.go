package tracing

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.False(t, cfg.Enabled)
	require.Equal(t, "file", cfg.Exporter)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "reltime", cfg.ServiceName)
}

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), SpanTick)
	require.False(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

// readLines returns the non-empty lines of the trace file.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestNewProvider_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "traces.jsonl")
	p, err := NewProvider(Config{
		Enabled:  true,
		Exporter: ExporterFile,
		FilePath: tracePath,
	})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), SpanTick)
	require.True(t, span.SpanContext().IsValid())
	span.SetAttributes(attribute.String(AttrSchedulerID, "sched-1"), attribute.Int64(AttrIntervalMs, 60_000))
	span.AddEvent(EventTimerArmed)
	span.End()

	_, span = p.Tracer().Start(context.Background(), SpanEvaluate)
	span.End()

	// Shutdown flushes the batcher and closes the file.
	require.NoError(t, p.Shutdown(context.Background()))

	lines := readLines(t, tracePath)
	require.Len(t, lines, 2, "one span per line")
	require.Contains(t, lines[0], `"Name":"scheduler.tick"`)
	require.Contains(t, lines[0], `"Key":"scheduler.id"`)
	require.Contains(t, lines[0], `"sched-1"`)
	require.Contains(t, lines[0], `"Name":"timer.armed"`)
	require.Contains(t, lines[1], `"Name":"timeago.evaluate"`)
}

func TestNewProvider_FileExporterAppends(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	for i := 0; i < 2; i++ {
		p, err := NewProvider(Config{Enabled: true, Exporter: ExporterFile, FilePath: tracePath})
		require.NoError(t, err)
		_, span := p.Tracer().Start(context.Background(), SpanReconfigure)
		span.End()
		require.NoError(t, p.Shutdown(context.Background()))
	}
	require.Len(t, readLines(t, tracePath), 2)
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.ErrorContains(t, err, "file_path required")
}

func TestNewProvider_NoneExporterStillSamples(t *testing.T) {
	p, err := NewProvider(Config{Enabled: true, Exporter: "none", SampleRate: 5})
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), SpanEvaluate)
	require.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported exporter type: zipkin")
}
