package main

import (
	"flag"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/inkwell-graphics/svgraster"
)

func main() {
	width := flag.Int("width", 0, "fallback viewport width in pixels when the document sets none")
	height := flag.Int("height", 0, "fallback viewport height in pixels when the document sets none")
	scale := flag.Float64("scale", 1, "output scale factor")
	strict := flag.Bool("strict", false, "fail on unsupported filter primitives")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.WithError(err).Fatal("read stdin")
	}

	opts := []svgraster.Option{
		svgraster.WithLogger(logger),
		svgraster.WithScale(*scale),
		svgraster.WithCompatFlags(*strict, !*strict),
	}
	if *width > 0 && *height > 0 {
		opts = append(opts, svgraster.WithViewport(*width, *height))
	}

	img, err := svgraster.Render(src, opts...)
	if err != nil {
		logger.WithError(err).Fatal("render")
	}

	rgba := &image.RGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	if err := png.Encode(os.Stdout, rgba); err != nil {
		logger.WithError(err).Fatal("encode png")
	}
}
