package ui

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

func PrintHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `%s - download a single file over HTTP

Usage:
  %s -u <url> -o <path> [options]

Options:
%s`, fs.Name(), fs.Name(), fs.FlagUsages())
}
