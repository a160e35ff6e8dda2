// Package hclconf loads the optional tool configuration file. Flags always
// win over the file; the file exists so a profiles workspace can pin its
// settings next to the documents it describes.
package hclconf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/xrprofiles/internal/ctxlog"
)

// File is the decoded tool configuration. Zero values mean "not set"; the
// Watch pointer distinguishes an explicit false from absence.
type File struct {
	ProfilesPath      string `hcl:"profiles_path,optional"`
	Port              int    `hcl:"port,optional"`
	RemoteRegistry    string `hcl:"remote_registry,optional"`
	DefaultHandedness string `hcl:"default_handedness,optional"`
	StatePath         string `hcl:"state_path,optional"`
	LogFormat         string `hcl:"log_format,optional"`
	LogLevel          string `hcl:"log_level,optional"`
	Watch             *bool  `hcl:"watch,optional"`
}

// Load parses and decodes one configuration file. Expressions may reference
// process environment variables through the `env` object, e.g.
// `profiles_path = "${env.HOME}/profiles"`.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading tool configuration.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, envContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	logger.Debug("Tool configuration loaded.", "path", path)
	return &f, nil
}

// envContext exposes the process environment as a cty object named `env`.
func envContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
