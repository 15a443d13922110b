// Command bmfontgen converts an outline font into the embedded bitmap or
// vector container described by the project's binary format, driven by a
// JSON or INI config file with optional CLI overrides.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/hellsge/font-tool-typescript-sub001/internal/config"
	"github.com/hellsge/font-tool-typescript-sub001/internal/driver"
	"github.com/hellsge/font-tool-typescript-sub001/internal/errs"
	"github.com/hellsge/font-tool-typescript-sub001/internal/logging"
)

const version = "1.0.2"

type options struct {
	Size       *int    `long:"size" description:"override fontSize in pixels"`
	Bold       bool    `long:"bold" description:"force bold on"`
	NoBold     bool    `long:"no-bold" description:"force bold off"`
	Italic     bool    `long:"italic" description:"force italic on"`
	NoItalic   bool    `long:"no-italic" description:"force italic off"`
	RenderMode *int    `long:"render-mode" description:"override bits-per-pixel {1,2,4,8}"`
	Output     *string `long:"output" description:"override outputPath"`
	Rotation   *int    `long:"rotation" description:"override rotation in {0,90,180,270}"`
	Verbose    bool    `short:"v" long:"verbose" description:"enable debug logging"`
	Concurrency int    `long:"concurrency" default:"1" description:"max concurrent font-config runs in batch mode"`
	Version    bool    `long:"version" description:"print the version and exit"`

	Positional struct {
		ConfigPath string `positional-arg-name:"configPath"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	args, err := parser.ParseArgs(argv)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return int(errs.CodeGeneric)
	}
	_ = args

	if opts.Version {
		fmt.Println(version)
		return 0
	}
	if opts.Positional.ConfigPath == "" {
		fmt.Fprintln(os.Stderr, "bmfontgen: missing required argument configPath")
		return int(errs.CodeConfig)
	}

	log := logging.New(opts.Verbose)

	overrides := config.Overrides{
		Size:       opts.Size,
		RenderMode: opts.RenderMode,
		Output:     opts.Output,
		Rotation:   opts.Rotation,
	}
	if opts.Bold {
		t := true
		overrides.Bold = &t
	} else if opts.NoBold {
		f := false
		overrides.Bold = &f
	}
	if opts.Italic {
		t := true
		overrides.Italic = &t
	} else if opts.NoItalic {
		f := false
		overrides.Italic = &f
	}

	cfgs, err := config.Load(opts.Positional.ConfigPath, overrides)
	if err != nil {
		log.WithError(err).Error("failed to load config")
		return int(errs.ExitCode(err))
	}

	d := driver.New(log)
	if opts.Concurrency > 1 {
		d.Concurrency = opts.Concurrency
	}
	if err := d.RunAll(cfgs); err != nil {
		log.WithError(err).Error("run failed")
		return int(errs.ExitCode(err))
	}
	return int(errs.CodeOK)
}
