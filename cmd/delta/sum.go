package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/statetree/delta"
)

func sum(cfg *SumConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Sum.Parse(cc, args)
	if err != nil {
		cfg.Sum.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		n, err := getObjFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cc.Out, "%s  %s\n", delta.Checksum(n), arg); err != nil {
			return err
		}
	}
	return nil
}
