package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Eyevinn/timecode-tools/internal"
	"github.com/sirupsen/logrus"
)

const tool = "ts-scte35tc"

var usg = `Usage of %s:

%s lists the SCTE-35 splice messages of a TS file with their splice time as a timecode.
The timecode given by -start is placed at the 90 kHz PTS given by -startpts.
`

func parseOptions() internal.Options {
	cfg, err := internal.LoadEnvConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	opts := internal.Options{ShowStreamInfo: true, ShowSCTE35: true}
	flag.StringVar(&opts.Rate, "rate", cfg.Rate, "frame rate, one of "+internal.RateNames())
	flag.StringVar(&opts.StartTimecode, "start", "00:00:00:00", "timecode at the reference PTS")
	flag.Int64Var(&opts.StartPTS, "startpts", 0, "reference PTS in 90 kHz ticks")
	flag.BoolVar(&opts.Indent, "indent", cfg.Indent, "indent JSON output")
	logLevel := flag.String("loglevel", cfg.LogLevel, "log level")
	logFormat := flag.String("logformat", cfg.LogFormat, "log format, text or json")
	flag.BoolVar(&opts.Version, "version", false, "print version")

	flag.Usage = func() {
		parts := strings.Split(os.Args[0], "/")
		name := parts[len(parts)-1]
		fmt.Fprintf(os.Stderr, usg, name, name)
		fmt.Fprintf(os.Stderr, "\nRun as: %s [options] file.ts (- for stdin) with options:\n\n", name)
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
	err := internal.Execute(os.Stdout, o, inFile, internal.ParseSCTE35)
	if err != nil {
		o.Logger.Fatal(err)
	}
}
