// Command scswf-dcomp rewrites a SupercellSWF file under a different
// compression envelope by decoding it and encoding the result again. Tags
// the decoder does not recognise are skipped on read and are absent from
// the output.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/codec"
)

func main() {
	app := cli.NewApp()
	app.Name = "scswf-dcomp"
	app.Usage = "rewrite a SupercellSWF file under a different compression envelope"
	app.ArgsUsage = "INPUT OUTPUT"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "method",
			Value: "none",
			Usage: "target compression: none, lzma, or zstd",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		method, err := parseMethod(c.String("method"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		in, err := os.Open(c.Args().Get(0))
		if err != nil {
			return cli.Exit(fmt.Errorf("open input: %w", err), 1)
		}
		defer in.Close()

		raw, err := io.ReadAll(in)
		if err != nil {
			return cli.Exit(fmt.Errorf("read input: %w", err), 1)
		}

		doc, warnings, err := codec.Load(raw, nil)
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		if err != nil {
			return cli.Exit(fmt.Errorf("decode: %w", err), 1)
		}

		doc.Compression = method
		out, err := codec.Save(doc, nil)
		if err != nil {
			return cli.Exit(fmt.Errorf("encode: %w", err), 1)
		}

		outFile, err := os.Create(c.Args().Get(1))
		if err != nil {
			return cli.Exit(fmt.Errorf("create output: %w", err), 1)
		}
		defer outFile.Close()
		if _, err := outFile.Write(out); err != nil {
			return cli.Exit(fmt.Errorf("write output: %w", err), 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseMethod(s string) (swf.Compression, error) {
	switch s {
	case "none":
		return swf.NONE, nil
	case "lzma":
		return swf.LZMA, nil
	case "zstd":
		return swf.ZSTD, nil
	case "lzham":
		return swf.LZHAM, nil
	default:
		return swf.NONE, fmt.Errorf("unrecognised compression method %q", s)
	}
}
