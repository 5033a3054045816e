// Package cli provides the operations of the wrongbook command line tool.
package cli

import (
	"io"

	"github.com/wrongbook/backend/internal/analysis"
)

// Context is the context for the CLI.
type Context struct {
	analysis *analysis.Service
	out      io.Writer
}

// NewContext creates a new Context writing its output to out.
func NewContext(analysis *analysis.Service, out io.Writer) *Context {
	return &Context{
		analysis: analysis,
		out:      out,
	}
}
