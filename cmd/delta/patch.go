package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/statetree/delta"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 args, a base document and a change list", cli.ErrUsage)
	}
	logger := cfg.logger()
	base, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	if cfg.RFC {
		d, err := readFile(cc, args[1])
		if err != nil {
			return err
		}
		res, err := delta.ApplyJSONPatch(base, d)
		if err != nil {
			return err
		}
		return putObj(cfg.MainConfig, cc.Out, res)
	}
	changes, err := getChangeList(cc, args[1])
	if err != nil {
		return err
	}
	res, err := delta.Apply(base, changes)
	if err != nil {
		return err
	}
	if changes.Checksum != "" {
		got := delta.Checksum(res)
		if got != changes.Checksum {
			logger.Warn("result checksum does not match the change list",
				"want", changes.Checksum, "got", got)
		}
	}
	return putObj(cfg.MainConfig, cc.Out, res)
}
