package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/statetree/delta"
)

func optimize(cfg *OptimizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Optimize.Parse(cc, args)
	if err != nil {
		cfg.Optimize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: optimize requires 1 arg, a change list", cli.ErrUsage)
	}
	changes, err := getChangeList(cc, args[0])
	if err != nil {
		return err
	}
	d, err := json.MarshalIndent(delta.Optimize(changes), "", "  ")
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(append(d, '\n'))
	return err
}
