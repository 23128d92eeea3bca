package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/statetree/delta"
	"github.com/statetree/delta/render"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: merge requires 3 args: base, local, remote", cli.ErrUsage)
	}
	logger := cfg.logger()
	base, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	local, err := getObjFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	remote, err := getObjFile(cfg.MainConfig, cc, args[2])
	if err != nil {
		return err
	}

	var opts []delta.MergeOpt
	if cfg.Resolve != "" {
		r, err := delta.ExprResolver(cfg.Resolve)
		if err != nil {
			return err
		}
		opts = append(opts, delta.WithResolver(r))
	}
	res, conflicts, err := delta.MergeWith(base,
		delta.Diff(base, local), delta.Diff(base, remote), opts...)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		logger.Warn("merge produced conflicts", "count", len(conflicts))
		if err := render.Conflicts(os.Stderr, conflicts); err != nil {
			return err
		}
	}
	if err := putObj(cfg.MainConfig, cc.Out, res); err != nil {
		return err
	}
	if len(conflicts) > 0 && cfg.Resolve == "" {
		return cli.ExitCodeErr(1)
	}
	return nil
}
