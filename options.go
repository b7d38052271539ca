/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Options are the command line settings.
type Options struct {
	// Scale is the window magnification.
	Scale int

	// Delay is the minimum interval between two machine steps.
	Delay time.Duration

	// ROM is the path of the program to run.
	ROM string

	Debug    bool
	Quiet    bool
	Trace    bool
	Terminal bool
}

// UsageError is returned for malformed command lines.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the reason, if any, followed by the usage text.
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	fmt.Fprintf(w, "usage: chip8vm [options] <scale> <delay_ms> <rom_path>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseOptions parses a full command line, program name included.
func ParseOptions(args []string) (Options, error) {
	name := "chip8vm"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction (implies -debug)")
	flags.BoolVar(&opts.Terminal, "term", false, "render to the terminal instead of opening a window")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags}
	}

	args = flags.Args()
	if len(args) != 3 {
		return opts, &UsageError{flags: flags}
	}

	scale, err := strconv.Atoi(args[0])
	if err != nil || scale <= 0 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("invalid scale '%s'", args[0])}
	}

	delay, err := strconv.Atoi(args[1])
	if err != nil || delay <= 0 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("invalid delay '%s'", args[1])}
	}

	opts.Scale = scale
	opts.Delay = time.Duration(delay) * time.Millisecond
	opts.ROM = args[2]

	if opts.Trace {
		opts.Debug = true
	}

	return opts, nil
}
