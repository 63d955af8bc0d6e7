package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Performing(name string, dryRun bool) {
	if dryRun {
		r.lines = append(r.lines, "would "+name)
		return
	}
	r.lines = append(r.lines, "perform "+name)
}

func (r *recordingReporter) Skipped(name string) {
	r.lines = append(r.lines, "skip "+name)
}

func (r *recordingReporter) Failed(name string, err error) {
	r.lines = append(r.lines, fmt.Sprintf("fail %s", name))
}

func newTestContext(t *testing.T) (*Context, *recordingReporter, *RecordingRunner) {
	t.Helper()
	reporter := &recordingReporter{}
	runner := &RecordingRunner{}
	return &Context{
		Ctx:      context.Background(),
		OS:       platform.Linux,
		FS:       afero.NewMemMapFs(),
		Env:      paths.NewMapEnv(map[string]string{"HOME": "/home/u"}),
		Runner:   runner,
		Reporter: reporter,
		Logger:   zerolog.Nop(),
	}, reporter, runner
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}
