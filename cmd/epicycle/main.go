/*
Command epicycle reconstructs planar curves as chains of rotating vectors.

Curves are given as SVG path data, as an SVG file, or as a list of knots
through which a smooth closed curve is laid. The curve is analyzed into
rotating vectors, which may be printed, evaluated at a time value, or
rendered into a sequence of PNG frames:

	epicycle analyze heart.svg
	epicycle analyze --d "M0 0 L10 0 L5 8 Z" --harmonics 20
	epicycle state --knots "0,0 3,1 4,4 1,3" --t 0.25
	epicycle render --out frames/ heart.svg

Settings are read from a TOML file given by --config.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
