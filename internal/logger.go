package internal

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a stderr logger tagged with the tool name. format is
// "text" or "json".
func NewLogger(tool, level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	logger.SetLevel(lvl)

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	default:
		return nil, errors.Errorf("invalid log format %q", format)
	}
	logger.SetOutput(os.Stderr)
	logger.AddHook(&toolHook{tool: tool})
	return logger, nil
}

// toolHook adds tool and version fields to every entry.
type toolHook struct {
	tool string
}

func (h *toolHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *toolHook) Fire(e *logrus.Entry) error {
	e.Data["tool"] = h.tool
	e.Data["version"] = Version
	return nil
}
