// Command scswf-info prints summary statistics for a SupercellSWF file:
// its compression envelope, texture dimensions and formats, and resource
// counts.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/codec"
)

func main() {
	app := cli.NewApp()
	app.Name = "scswf-info"
	app.Usage = "print summary statistics for a SupercellSWF (.sc) file"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		path := c.Args().First()
		store := codec.OSStore{}
		doc, warnings, err := codec.LoadFile(store, path, nil)
		if err != nil {
			return cli.Exit(err, 1)
		}
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}

		printSummary(doc)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func printSummary(doc *swf.Document) {
	fmt.Printf("compression:     %s\n", doc.Compression)
	fmt.Printf("external texture: %v (uncommon=%v lowres=%v)\n",
		doc.HasExternalTexture, doc.UseUncommonTexture, doc.UseLowresTexture)
	fmt.Printf("textures:        %d\n", len(doc.Textures))

	var totalBytes uint64
	for i, tex := range doc.Textures {
		size := uint64(tex.Width) * uint64(tex.Height) * 4
		totalBytes += size
		layout := "linear"
		if !tex.Linear {
			layout = "block"
		}
		fmt.Printf("  [%d] %dx%d format=%d layout=%s (%s)\n",
			i, tex.Width, tex.Height, tex.PixelFormat, layout, humanize.Bytes(size))
	}
	if len(doc.Textures) > 0 {
		fmt.Printf("  total pixel bytes (uncompressed, RGBA): %s\n", humanize.Bytes(totalBytes))
	}

	shapes, movieClips, textFields, modifiers := 0, 0, 0, 0
	for _, r := range doc.Resources {
		switch r.(type) {
		case *swf.Shape:
			shapes++
		case *swf.MovieClip:
			movieClips++
		case *swf.TextField:
			textFields++
		case *swf.MovieClipModifier:
			modifiers++
		}
	}
	fmt.Printf("shapes:          %d\n", shapes)
	fmt.Printf("movie clips:     %d\n", movieClips)
	fmt.Printf("text fields:     %d\n", textFields)
	fmt.Printf("modifiers:       %d\n", modifiers)
	fmt.Printf("transform banks: %d\n", len(doc.Banks))
	fmt.Printf("exports:         %d\n", len(doc.Exports))
}
