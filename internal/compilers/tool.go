package compilers

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

const toolVersion = 1

// Tool compiles a resource by running an external executable. The source is copied to
// a temporary file, the tool writes its result to another one and that becomes the
// output. Arguments may use the {input}, {output} and {platform} placeholders.
type Tool struct {
	name    string
	tool    domain.Tool
	runner  ports.ToolRunner
	version uint32
}

// NewTool creates a Tool compiler.
func NewTool(name string, tool domain.Tool, runner ports.ToolRunner, binding uint32) *Tool {
	return &Tool{
		name:    name,
		tool:    tool,
		runner:  runner,
		version: version(toolVersion, binding),
	}
}

// Version implements ports.Compiler.
func (c *Tool) Version() uint32 { return c.version }

// Compile implements ports.Compiler.
func (c *Tool) Compile(cc ports.CompileContext) error {
	exe, ok := cc.ExePath(c.tool.Candidates...)
	if !ok {
		cc.Error("%w: %s", domain.ErrMissingToolchain, strings.Join(c.tool.Candidates, ", "))
		return nil
	}

	src, err := cc.ReadSource()
	if err != nil {
		return err
	}

	input := cc.TemporaryPath(strings.TrimPrefix(path.Ext(cc.SourcePath()), "."))
	output := cc.TemporaryPath("out")
	defer cc.DeleteFile(input)
	defer cc.DeleteFile(output)

	if err := cc.WriteTemporary(input, src); err != nil {
		return err
	}

	args := expand(c.tool.Args, strings.NewReplacer(
		"{input}", input,
		"{output}", output,
		"{platform}", cc.Platform(),
	))
	if err := c.runner.Run(cc.Context(), filepath.Dir(input), exe, args); err != nil {
		cc.Error("%s failed: %v", c.name, err)
		return nil
	}

	data, err := cc.ReadTemporary(output)
	if err != nil {
		cc.Error("%s produced no output", c.name)
		return nil
	}
	_, err = cc.Write(data)
	return err
}

func expand(args []string, r *strings.Replacer) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = r.Replace(arg)
	}
	return out
}
