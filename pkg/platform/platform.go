// Package platform maps the host platform identifier to the OS tag used to
// pick per-OS destinations.
package platform

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

// OSTag is the symbolic platform name used as a key in install specs.
type OSTag string

const (
	Windows OSTag = "windows"
	MacOS   OSTag = "macos"
	Linux   OSTag = "linux"
	Unix    OSTag = "unix"
	Unknown OSTag = "unknown"
)

// AllTags lists every tag in classification priority order.
var AllTags = []OSTag{Windows, MacOS, Linux, Unix, Unknown}

type matcher struct {
	tag     OSTag
	pattern *regexp.Regexp
}

// Order matters: identifiers such as "cygwin" or "darwin" would otherwise
// fall through to the looser unix patterns.
var matchers = []matcher{
	{Windows, regexp.MustCompile(`(?i)mswin|msys|mingw|cygwin|bccwin|wince|emc|windows`)},
	{MacOS, regexp.MustCompile(`(?i)darwin|mac os|macos`)},
	{Linux, regexp.MustCompile(`(?i)linux`)},
	{Unix, regexp.MustCompile(`(?i)solaris|bsd|illumos|aix|dragonfly`)},
}

var (
	currentOnce sync.Once
	current     OSTag
)

// Classify maps a host platform identifier to its tag. First match wins.
func Classify(hostID string) OSTag {
	for _, m := range matchers {
		if m.pattern.MatchString(hostID) {
			return m.tag
		}
	}
	return Unknown
}

// Current returns the tag of the running platform, computed once.
func Current() OSTag {
	currentOnce.Do(func() {
		current = Classify(runtime.GOOS)
	})
	return current
}

// ParseTag converts a manifest key or flag value into an OSTag.
func ParseTag(s string) (OSTag, error) {
	normalized := OSTag(strings.ToLower(strings.TrimSpace(s)))
	for _, tag := range AllTags {
		if tag == normalized {
			return tag, nil
		}
	}
	if normalized == "darwin" {
		return MacOS, nil
	}
	return Unknown, fmt.Errorf("unknown os tag %q", s)
}

// String implements fmt.Stringer
func (t OSTag) String() string {
	return string(t)
}
