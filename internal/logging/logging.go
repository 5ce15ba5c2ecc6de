// Package logging configures the hclog logger shared by palex commands.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Level picks the log level for the verbose and quiet flags. Quiet wins.
func Level(verbose, quiet bool) hclog.Level {
	switch {
	case quiet:
		return hclog.Error
	case verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// NewWithOutput returns a logger writing to w.
func NewWithOutput(name string, w io.Writer, verbose, quiet bool) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  Level(verbose, quiet),
		Color:  hclog.AutoColor,
	})
}
