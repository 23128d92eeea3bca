package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/statetree/delta"
	"github.com/statetree/delta/render"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	logger := cfg.logger()
	before, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	after, err := getObjFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	changes := delta.Diff(before, after)
	if cfg.Optimize {
		n := len(changes.Ops)
		changes = delta.Optimize(changes)
		logger.Debug("optimized change list", "before", n, "after", len(changes.Ops))
	}
	if changes.IsEmpty() {
		logger.Debug("documents are equal")
		return nil
	}
	if cfg.Wire {
		d, err := json.MarshalIndent(changes, "", "  ")
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(append(d, '\n')); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	if err := render.ChangeList(cc.Out, changes, cfg.renderOpts(cc)...); err != nil {
		return err
	}
	// Like diff(1), differing inputs exit nonzero.
	return cli.ExitCodeErr(1)
}
