// SPDX-License-Identifier: EPL-2.0

// Command healtone renders healing-frequency tones, binaural and isochronic
// beats and curated sessions to WAV, and mixes tones under music files.
//
//	healtone [-config file] [-log-level level] <command> [flags]
//
// Run "healtone <command> -h" for the flags of a command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

// errUsage marks a command line that cannot be run as given.
var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"tone", "render a pure tone", runTone},
	{"binaural", "render a binaural beat", runBinaural},
	{"isochronic", "render an isochronic tone", runIsochronic},
	{"brainwave", "render a brainwave preset", runBrainwave},
	{"session", "render a curated session", runSession},
	{"sequence", "render tones one after another (chakra sequence by default)", runSequence},
	{"solfeggio", "render every solfeggio frequency in parallel", runSolfeggio},
	{"mix", "mix a tone under a music file", runMix},
	{"convert", "decode a file and write it as WAV", runConvert},
	{"list", "list presets, sessions, mix levels and formats", runList},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// app is what every subcommand runs against.
type app struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
}

func printUsage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  healtone [options] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	global.SetOutput(w)
	global.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  healtone tone -freq 528 -duration 300 -harmonics warm -o love.wav")
	fmt.Fprintln(w, "  healtone brainwave -name theta -duration 900 -quality high")
	fmt.Fprintln(w, "  healtone mix -music song.mp3 -freq 432 -level subliminal -o song_432.wav")
}

// run executes one command line and returns the process exit code:
// 0 on success, 1 when the command failed, 2 on a usage error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	global := flag.NewFlagSet("healtone", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configPath := global.String("config", "", "Path to a YAML config file")
	logLevel := global.String("log-level", "", "Log level (debug, info, warn, error); overrides the config")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, global)
			return 0
		}
		fmt.Fprintf(stderr, "healtone: %v\n", err)
		printUsage(stderr, global)
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr, global)
		return 2
	}

	cfg, err := LoadConfig(*configPath, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Configuration error: %v\n", err)
			return 1
		}
	}
	if err := setupLogging(cfg, stderr); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	cmd, ok := lookupCommand(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "healtone: unknown command %q\n", rest[0])
		printUsage(stderr, global)
		return 2
	}

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}
	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			fmt.Fprintf(stderr, "healtone %s: %v\n", cmd.name, err)
			return 2
		}

		logrus.WithFields(logrus.Fields{
			"function": "run",
			"command":  cmd.name,
			"error":    err.Error(),
		}).Error("Command failed")
		fmt.Fprintf(stderr, "healtone %s: %v\n", cmd.name, err)
		return 1
	}

	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()

	os.Exit(code)
}
