package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/statetree/delta"
	"github.com/statetree/delta/ir"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getObjFile loads a document as a value. The format follows the -j/-y
// flags, else the file extension, else json.
func getObjFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	if cfg.Y || (!cfg.J && hasYAMLExt(path)) {
		n, err := ir.ParseYAML(d)
		if err != nil {
			return nil, fmt.Errorf("error decoding %q: %w", path, err)
		}
		return n, nil
	}
	n, err := ir.ParseJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", path, err)
	}
	return n, nil
}

func getChangeList(cc *cli.Context, path string) (*delta.ChangeList, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	c, err := delta.ParseChangeList(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding change list %q: %w", path, err)
	}
	return c, nil
}

func hasYAMLExt(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

// putObj writes a value back out in the input format.
func putObj(cfg *MainConfig, w io.Writer, n *ir.Node) error {
	if cfg.Y {
		d, err := ir.MarshalYAML(n)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	d, err := n.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
