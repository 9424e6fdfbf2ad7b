package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Eyevinn/timecode-tools/internal"
	"github.com/sirupsen/logrus"
)

const tool = "tc-convert"

var usg = `Usage of %s:

%s converts SMPTE timecodes and frame numbers, one value per line, at a given frame rate.
Every value is printed as a JSON line with its canonical timecode, frame number and media time.
Lines that are empty or start with # are skipped.
The -add option moves every value by a number of frames with wraparound at 24 hours.
Defaults are read from TIMECODE_RATE, TIMECODE_INDENT, TIMECODE_LOG_LEVEL and TIMECODE_LOG_FORMAT.
`

func parseOptions() internal.Options {
	cfg, err := internal.LoadEnvConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	opts := internal.Options{}
	flag.StringVar(&opts.Rate, "rate", cfg.Rate, "frame rate, one of "+internal.RateNames())
	flag.Int64Var(&opts.AddFrames, "add", 0, "frames to add to every value, negative to subtract")
	flag.BoolVar(&opts.Indent, "indent", cfg.Indent, "indent JSON output")
	logLevel := flag.String("loglevel", cfg.LogLevel, "log level")
	logFormat := flag.String("logformat", cfg.LogFormat, "log format, text or json")
	flag.BoolVar(&opts.Version, "version", false, "print version")

	flag.Usage = func() {
		parts := strings.Split(os.Args[0], "/")
		name := parts[len(parts)-1]
		fmt.Fprintf(os.Stderr, usg, name, name)
		fmt.Fprintf(os.Stderr, "\nRun as: %s [options] values.txt (- for stdin) with options:\n\n", name)
		flag.PrintDefaults()
	}

	flag.Parse()
	logger, err := internal.NewLogger(tool, *logLevel, *logFormat)
	if err != nil {
		logrus.Fatal(err)
	}
	opts.Logger = logger
	return opts
}

func main() {
	o, inFile := internal.ParseParams(tool, parseOptions)
	err := internal.Execute(os.Stdout, o, inFile, internal.ConvertLines)
	if err != nil {
		o.Logger.Fatal(err)
	}
}
