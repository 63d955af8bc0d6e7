package testutil

import "sync"

// RecordingReporter collects progress as short lines: "perform <name>",
// "would <name>" in dry runs, "skip <name>" and "fail <name>".
type RecordingReporter struct {
	mu    sync.Mutex
	lines []string
}

func (r *RecordingReporter) Performing(name string, dryRun bool) {
	if dryRun {
		r.add("would " + name)
		return
	}
	r.add("perform " + name)
}

func (r *RecordingReporter) Skipped(name string) { r.add("skip " + name) }

func (r *RecordingReporter) Failed(name string, _ error) { r.add("fail " + name) }

// Lines returns the recorded lines in order.
func (r *RecordingReporter) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *RecordingReporter) add(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}
