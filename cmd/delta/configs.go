package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/statetree/delta/render"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='read inputs as json'"`
	Y bool `cli:"name=y aliases=yaml desc='read inputs as yaml'"`

	Color   bool `cli:"name=color desc='render with color'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log progress to stderr'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) logger() *log.Logger {
	logger := log.New(os.Stderr)
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// renderOpts enables color when asked for explicitly, or by default when
// writing to a terminal.
func (cfg *MainConfig) renderOpts(cc *cli.Context) []render.Opt {
	if cfg.Color {
		return []render.Opt{render.Colors(true)}
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := cc.Out.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []render.Opt{render.Colors(true)}
	}
	return nil
}

type DiffConfig struct {
	*MainConfig
	Wire     bool `cli:"name=wire desc='output the json wire form instead of a rendering'"`
	Optimize bool `cli:"name=z aliases=optimize desc='compact the change list before output'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	RFC bool `cli:"name=rfc6902 desc='treat the change list as a standard json patch'"`

	Patch *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Resolve string `cli:"name=resolve desc='expr program deciding conflicted paths'"`

	Merge *cli.Command
}

type OptimizeConfig struct {
	*MainConfig

	Optimize *cli.Command
}

type SumConfig struct {
	*MainConfig

	Sum *cli.Command
}
