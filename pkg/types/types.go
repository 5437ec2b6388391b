package types

import (
	"github.com/ohler55/ojg/jp"
)

// Well-known configuration sections and keys.
const (
	SectionMain = "main"
	SectionLenv = "lenv"

	// SectionAdditionalParameters carries free-form platform options,
	// including the stage-out object-store settings.
	SectionAdditionalParameters = "additional_parameters"

	KeyTmpPath = "tmpPath"
	KeyStatus  = "status"
	KeyMessage = "message"
)

// Execution status values written into the lenv section.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Section is a single configuration section: a flat key/value mapping.
type Section map[string]string

// Conf is the nested configuration mapping handed over by the caller.
// Handlers mutate it in place and never replace it.
type Conf map[string]Section

// Get returns the value at section/key and whether it is present.
func (c Conf) Get(section, key string) (string, bool) {
	sec, ok := c[section]
	if !ok {
		return "", false
	}
	v, ok := sec[key]
	return v, ok
}

// GetDefault returns the value at section/key, or def when absent.
func (c Conf) GetDefault(section, key, def string) string {
	if v, ok := c.Get(section, key); ok {
		return v
	}
	return def
}

// Set writes section/key, creating the section on demand.
func (c Conf) Set(section, key, value string) {
	sec, ok := c[section]
	if !ok {
		sec = make(Section)
		c[section] = sec
	}
	sec[key] = value
}

// Lookup resolves a dot key path (e.g. "additional_parameters.STAGEOUT_AWS_SERVICEURL")
// against the configuration and reports whether a value was found.
func (c Conf) Lookup(path string) (any, bool) {
	expr, err := jp.ParseString("$." + path)
	if err != nil {
		return nil, false
	}
	results := expr.Get(c.generic())
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// generic converts the conf into plain map[string]any data so jsonpath
// expressions can walk it.
func (c Conf) generic() map[string]any {
	out := make(map[string]any, len(c))
	for name, sec := range c {
		m := make(map[string]any, len(sec))
		for k, v := range sec {
			m[k] = v
		}
		out[name] = m
	}
	return out
}

// SetMessage writes the execution status and message into the lenv
// section, where the ZOO kernel reads them back after the run.
func (c Conf) SetMessage(status, message string) {
	c.Set(SectionLenv, KeyStatus, status)
	c.Set(SectionLenv, KeyMessage, message)
}

// TmpPath returns the temp-path slot from the main section, or empty
// when unset.
func (c Conf) TmpPath() string {
	return c.GetDefault(SectionMain, KeyTmpPath, "")
}

// Output is a single value descriptor registered under an output name:
// either an inline value with a MIME type, or a reference to a STAC
// catalog document.
type Output struct {
	Value          string `json:"value,omitempty"`
	MimeType       string `json:"mimeType,omitempty"`
	StacCatalogURI string `json:"stac,omitempty"`
}

// Outputs maps output names to value descriptors. Like Conf it is
// shared with the caller and mutated in place.
type Outputs map[string]Output

// RunArtifacts is what the runner hands to the post-execution hooks:
// the workflow's main log, output document, usage report, and the
// per-tool log files. Any of them may be empty, in particular on
// failure paths.
type RunArtifacts struct {
	Log         string
	Output      string
	UsageReport string

	// ToolLogs maps a tool name to its ordered log file paths.
	ToolLogs map[string][]string
}
