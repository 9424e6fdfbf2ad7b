package internal

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Eyevinn/timecode-tools/timecode"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Rate           string
	MaxNrPictures  int
	Version        bool
	Indent         bool
	ShowStreamInfo bool
	ShowTimecodes  bool
	ShowSCTE35     bool
	ShowStatistics bool
	StartTimecode  string
	StartPTS       int64
	AddFrames      int64
	Logger         logrus.FieldLogger
}

// EnvConfig holds tool defaults read from TIMECODE_* environment variables.
// Command line flags override them.
type EnvConfig struct {
	Rate      string `envconfig:"RATE" default:"25"`
	Indent    bool   `envconfig:"INDENT" default:"false"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("timecode", &cfg); err != nil {
		return cfg, errors.Wrap(err, "reading TIMECODE_* environment")
	}
	return cfg, nil
}

func CreateFullOptions(rate string, max int) Options {
	return Options{Rate: rate, MaxNrPictures: max, ShowStreamInfo: true, ShowTimecodes: true, ShowSCTE35: true, ShowStatistics: true}
}

type OptionParseFunc func() Options
type RunableFunc func(ctx context.Context, w io.Writer, f io.Reader, o Options) error

func (o Options) log() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func ParseParams(tool string, function OptionParseFunc) (o Options, inFile string) {
	o = function()
	if o.Version {
		fmt.Printf("%s version %s\n", tool, GetVersion())
		os.Exit(0)
	}
	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inFile = flag.Args()[0]
	return o, inFile
}

func Execute(w io.Writer, o Options, inFile string, function RunableFunc) error {
	// Create a cancellable context in case you want to stop reading packets/data any time you want
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Handle SIGINT signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	defer signal.Stop(ch)
	go func() {
		select {
		case <-ch:
			o.log().Info("interrupted")
			cancel()
		case <-ctx.Done():
		}
	}()

	var f io.Reader
	if inFile == "-" {
		f = os.Stdin
	} else {
		fh, err := os.Open(inFile)
		if err != nil {
			return errors.Wrapf(err, "opening %s", inFile)
		}
		f = fh
		defer fh.Close()
	}

	return function(ctx, w, f, o)
}

// RateNames lists the accepted -rate values for usage texts.
func RateNames() string {
	rates := timecode.Rates()
	names := make([]string, len(rates))
	for i, r := range rates {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}
