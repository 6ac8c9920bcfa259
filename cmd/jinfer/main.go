// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command jinfer infers the type-arguments of the invocations listed in YAML problem files.
//
//	jinfer [-v] [-dump] [-color=auto|always|never] problem.yaml...
//
// One line is printed per invocation. The exit status is 1 when any invocation fails or disagrees
// with its `expect:` entry.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"github.com/wdamron/jinfer/problem"
)

const (
	green = "\x1b[32m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jinfer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log inference steps to stderr")
	dump := fs.Bool("dump", false, "dump the final bound set of each invocation")
	color := fs.String("color", "auto", "colorize output: auto, always or never")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: jinfer [-v] [-dump] [-color=auto|always|never] problem.yaml...")
		return 2
	}

	colorize, err := useColor(*color, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	status := 0
	for _, path := range fs.Args() {
		p, err := problem.LoadFile(path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			status = 1
			continue
		}
		for _, r := range p.Solve(logger) {
			ok := r.Matches() && (r.Call.Expect != "" || r.Outcome == problem.Solved)
			line := r.String()
			if !r.Matches() {
				line += fmt.Sprintf(" (expected %s)", r.Call.Expect)
			}
			switch {
			case !colorize:
			case ok:
				line = green + line + reset
			default:
				line = red + line + reset
			}
			fmt.Fprintln(stdout, line)
			if *dump && r.Bounds != nil {
				spew.Fdump(stdout, r.Stats, r.Bounds.Bounds())
			}
			if !ok {
				status = 1
			}
		}
	}
	return status
}

func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("jinfer: unknown color mode %q", mode)
}
