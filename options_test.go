package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "positional",
			args: []string{"chip8vm", "10", "3", "games/BRIX"},
			want: Options{Scale: 10, Delay: 3 * time.Millisecond, ROM: "games/BRIX"},
		},
		{
			name: "quiet terminal",
			args: []string{"chip8vm", "-q", "-term", "1", "2", "rom.ch8"},
			want: Options{Scale: 1, Delay: 2 * time.Millisecond, ROM: "rom.ch8", Quiet: true, Terminal: true},
		},
		{
			name: "trace implies debug",
			args: []string{"chip8vm", "-trace", "4", "1", "rom.ch8"},
			want: Options{Scale: 4, Delay: time.Millisecond, ROM: "rom.ch8", Debug: true, Trace: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}

func TestParseOptionsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "no arguments", args: []string{"chip8vm"}},
		{name: "missing rom", args: []string{"chip8vm", "10", "3"}},
		{name: "extra argument", args: []string{"chip8vm", "10", "3", "a", "b"}},
		{name: "unknown flag", args: []string{"chip8vm", "-nope", "10", "3", "rom"}},
		{name: "bad scale", args: []string{"chip8vm", "big", "3", "rom"}, msg: "invalid scale 'big'"},
		{name: "zero scale", args: []string{"chip8vm", "0", "3", "rom"}, msg: "invalid scale '0'"},
		{name: "negative delay", args: []string{"chip8vm", "10", "-3", "rom"}, msg: "invalid delay '-3'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.msg, usageErr.Error())
		})
	}
}

func TestShowUsage(t *testing.T) {
	_, err := ParseOptions([]string{"chip8vm", "10", "x", "rom"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "invalid delay 'x'\n"))
	assert.True(t, strings.Contains(out, "<scale> <delay_ms> <rom_path>"))
	assert.True(t, strings.Contains(out, "-trace"))
}
