// Command svgstl converts SVG drawings to STL solids for 3D printing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/paulhankin/svgstl/cmd/svgstl/svgstl"
	"github.com/paulhankin/svgstl/internal/logger"
)

func main() {
	fail := func(err error) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cf := &cliFlags{}
	fs := flag.NewFlagSet("svgstl", flag.ContinueOnError)
	cf.register(fs)
	cfg, err := cf.parse(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fail(err)
	}

	log, err := logger.New(cf.logLevel, cf.logFile)
	if err != nil {
		fail(err)
	}
	if err := svgstl.ConvertFile(cfg, log); err != nil {
		_ = log.Sync()
		fail(err)
	}
	_ = log.Sync()
}
