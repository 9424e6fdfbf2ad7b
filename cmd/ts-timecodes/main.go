package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Eyevinn/timecode-tools/internal"
	"github.com/sirupsen/logrus"
)

const tool = "ts-timecodes"

var usg = `Usage of %s:

%s lists the timecodes inside AVC pic_timing and HEVC time_code SEI messages of a TS file.
Each timecode is validated against the frame rate and printed with its frame number.
A statistics summary per PID reports discontinuities and timecodes that do not follow the PTS.
`

func parseOptions() internal.Options {
	cfg, err := internal.LoadEnvConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	opts := internal.Options{ShowStreamInfo: true, ShowStatistics: true}
	flag.StringVar(&opts.Rate, "rate", cfg.Rate, "frame rate, one of "+internal.RateNames())
	flag.IntVar(&opts.MaxNrPictures, "max", 0, "max nr pictures to parse")
	flag.BoolVar(&opts.Indent, "indent", cfg.Indent, "indent JSON output")
	statsOnly := flag.Bool("stats", false, "only print stream info and statistics")
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
	opts.ShowTimecodes = !*statsOnly
	logger, err := internal.NewLogger(tool, *logLevel, *logFormat)
	if err != nil {
		logrus.Fatal(err)
	}
	opts.Logger = logger
	return opts
}

func main() {
	o, inFile := internal.ParseParams(tool, parseOptions)
	err := internal.Execute(os.Stdout, o, inFile, internal.ParseTimecodes)
	if err != nil {
		o.Logger.Fatal(err)
	}
}
