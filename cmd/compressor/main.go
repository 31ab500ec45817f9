// Command compressor is a reference CLI around package bc: it decodes a PNG,
// compresses it with one of the BC1-BC7 variants, and writes a DX10 DDS
// container (§6). Adapted from the teacher's astcencgo CLI shape.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/blockcompress/bc/bc"
	"github.com/blockcompress/bc/ddswriter"
)

// variantDispatch maps a CLI variant name to a constructor, mirroring the
// original compressor's per-variant dispatch table (§6, SUPPLEMENTED
// FEATURES).
var variantDispatch = map[string]func() bc.CompressionVariant{
	"bc1": bc.BC1Variant,
	"bc2": bc.BC2Variant,
	"bc3": bc.BC3Variant,
	"bc4": bc.BC4Variant,
	"bc5": bc.BC5Variant,
	"bc7": func() bc.CompressionVariant { return bc.BC7Variant(bc.BC7OpaqueFast()) },
	"bc7-alpha": func() bc.CompressionVariant { return bc.BC7Variant(bc.BC7AlphaFast()) },
}

func main() {
	var (
		inPath  string
		outPath string
		variant string
	)
	flag.StringVar(&inPath, "in", "", "input PNG file")
	flag.StringVar(&outPath, "out", "", "output DDS file")
	flag.StringVar(&variant, "variant", "bc7", "compression variant: "+variantNames())
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: compressor -in <input.png> -out <output.dds> [-variant bc1|bc2|bc3|bc4|bc5|bc7|bc7-alpha]")
		os.Exit(2)
	}
	if outPath == "" {
		fmt.Fprintln(os.Stderr, "missing -out")
		os.Exit(2)
	}

	ctor, ok := variantDispatch[strings.ToLower(variant)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown variant %q, want one of: %s\n", variant, variantNames())
		os.Exit(2)
	}

	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	v := ctor()
	blocks, err := bc.CompressRGBA8(v, width, height, rgba.Pix)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := ddswriter.Write(out, v, width, height, blocks); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s: %dx%d %s, %d bytes\n", outPath, width, height, v.Name(), len(blocks))
}

func variantNames() string {
	names := make([]string, 0, len(variantDispatch))
	for k := range variantDispatch {
		names = append(names, k)
	}
	return strings.Join(names, ", ")
}
