package types

import (
	"fmt"

	"github.com/arthur-debert/dotman/pkg/platform"
)

// TemplateValue is a template variable: either a plain value or a value
// chosen by OS tag.
type TemplateValue struct {
	value       interface{}
	byOS        map[platform.OSTag]interface{}
	fallback    interface{}
	hasFallback bool
}

// Scalar wraps a plain value (number, string, bool).
func Scalar(v interface{}) TemplateValue {
	return TemplateValue{value: v}
}

// PerOS builds an OS-conditional value. fallback is used for tags absent
// from byOS; pass hasFallback=false to make such tags an error.
func PerOS(byOS map[platform.OSTag]interface{}, fallback interface{}, hasFallback bool) TemplateValue {
	return TemplateValue{byOS: byOS, fallback: fallback, hasFallback: hasFallback}
}

// IsConditional reports whether the value depends on the OS.
func (v TemplateValue) IsConditional() bool {
	return v.byOS != nil
}

// Resolve returns the concrete value for os.
func (v TemplateValue) Resolve(os platform.OSTag) (interface{}, error) {
	if v.byOS == nil {
		return v.value, nil
	}
	if val, ok := v.byOS[os]; ok {
		return val, nil
	}
	if v.hasFallback {
		return v.fallback, nil
	}
	return nil, fmt.Errorf("no value for os %s", os)
}

// ResolveAll resolves every variable for os.
func ResolveAll(vars map[string]TemplateValue, os platform.OSTag) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(vars))
	for name, v := range vars {
		val, err := v.Resolve(os)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		out[name] = val
	}
	return out, nil
}
