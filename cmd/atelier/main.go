// Command atelier extracts garment pattern pieces from photographs and
// composites textures onto silhouette masks.
//
// Usage:
//
//	atelier pattern -in photo.jpg -pieces 4 -out panels.png -json pieces.json
//	atelier texture -mask mask.png -texture fabric.jpg -type mapped -params '{"scale":2}' -out out.jpg -format jpeg
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/atelier"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "pattern":
		err = runPattern(os.Args[2:])
	case "texture":
		err = runTexture(os.Args[2:])
	case "version":
		fmt.Println(atelier.Version)
	case "-h", "-help", "--help", "help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("atelier %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: atelier <pattern|texture|version> [flags]")
	fmt.Fprintln(os.Stderr, "run 'atelier <command> -h' for the flags of a command")
}

func runPattern(args []string) error {
	fs := flag.NewFlagSet("pattern", flag.ExitOnError)
	var (
		in        = fs.String("in", "", "input photograph")
		maskPath  = fs.String("mask", "", "precomputed silhouette mask (skips thresholding)")
		pieces    = fs.Int("pieces", atelier.DefaultPieceCount, "number of pattern pieces")
		threshold = fs.Float64("threshold", 0.9, "luminance threshold in (0,1)")
		kernel    = fs.Int("kernel", 3, "closing kernel size (odd)")
		auto      = fs.Bool("auto", false, "estimate the threshold from the image")
		offset    = fs.Float64("offset", 20, "piece strip width in pixels")
		out       = fs.String("out", "", "write the diagnostic panel here")
		format    = fs.String("format", "", "output format: png or jpeg (default from the -out extension)")
		quality   = fs.Int("quality", atelier.DefaultJPEGQuality, "JPEG quality (1-100)")
		jsonPath  = fs.String("json", "", "write the pieces as JSON here ('-' for stdout)")
		par       = fs.Bool("parallel", false, "run pixel kernels on all cores")
		verbose   = fs.Bool("v", false, "verbose logging")
	)
	_ = fs.Parse(args)
	setupLogging(*verbose)

	if (*in == "") == (*maskPath == "") {
		return fmt.Errorf("exactly one of -in or -mask is required")
	}

	opts := []atelier.Option{
		atelier.WithPieceCount(*pieces),
		atelier.WithThreshold(*threshold),
		atelier.WithKernelSize(*kernel),
		atelier.WithAutoThreshold(*auto),
		atelier.WithOffset(*offset),
	}
	if *par {
		opts = append(opts, atelier.WithDevice(atelier.DeviceParallel))
	}

	var (
		original *atelier.Raster
		res      *atelier.PatternResult
		err      error
	)
	if *in != "" {
		if original, err = atelier.LoadImage(*in); err != nil {
			return err
		}
		res, err = atelier.ExtractPattern(original, opts...)
	} else {
		var mask *atelier.Raster
		if mask, err = atelier.LoadMask(*maskPath); err != nil {
			return err
		}
		res, err = atelier.ExtractPatternFromMask(mask, opts...)
	}
	if err != nil {
		return err
	}

	if *out != "" {
		if err := saveImage(*out, *format, *quality, atelier.Visualize(original, res)); err != nil {
			return err
		}
		log.Printf("panels saved to %s", *out)
	}

	if *jsonPath != "" {
		data, err := json.MarshalIndent(res.Data(), "", "  ")
		if err != nil {
			return err
		}
		if *jsonPath == "-" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(*jsonPath, data, 0o600); err != nil {
			return err
		}
		log.Printf("%d pieces saved to %s", len(res.Pieces), *jsonPath)
	}
	return nil
}

func runTexture(args []string) error {
	fs := flag.NewFlagSet("texture", flag.ExitOnError)
	var (
		maskPath = fs.String("mask", "", "silhouette mask")
		texPath  = fs.String("texture", "", "texture image")
		kind     = fs.String("type", "simple", "texture type: simple, mapped or procedural")
		params   = fs.String("params", "", "texture parameters as a JSON object")
		out      = fs.String("out", "textured.png", "output image")
		format   = fs.String("format", "", "output format: png or jpeg (default from the -out extension)")
		quality  = fs.Int("quality", atelier.DefaultJPEGQuality, "JPEG quality (1-100)")
		par      = fs.Bool("parallel", false, "run pixel kernels on all cores")
		verbose  = fs.Bool("v", false, "verbose logging")
	)
	_ = fs.Parse(args)
	setupLogging(*verbose)

	if *maskPath == "" || *texPath == "" {
		return fmt.Errorf("-mask and -texture are required")
	}

	desc, err := atelier.ParseTextureParams(*kind, []byte(*params))
	if err != nil {
		return err
	}
	mask, err := atelier.LoadMask(*maskPath)
	if err != nil {
		return err
	}
	tex, err := atelier.LoadImage(*texPath)
	if err != nil {
		return err
	}

	var opts []atelier.Option
	if *par {
		opts = append(opts, atelier.WithDevice(atelier.DeviceParallel))
	}
	img, err := atelier.RenderTexture(mask, tex, desc, opts...)
	if err != nil {
		return err
	}
	if err := saveImage(*out, *format, *quality, img); err != nil {
		return err
	}
	log.Printf("textured image saved to %s (%dx%d)", *out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// saveImage writes img as PNG or JPEG. An empty format is taken from the
// file extension: .jpg and .jpeg are JPEG, anything else is PNG.
func saveImage(path, format string, quality int, img image.Image) error {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg":
			format = "jpeg"
		default:
			format = "png"
		}
	}
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return atelier.SaveJPEG(path, img, quality)
	case "png":
		return atelier.SavePNG(path, img)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	atelier.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
