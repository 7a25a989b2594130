package homepage

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const logHeader = "${time_rfc3339} ${level} ${prefix}"

// NewLogger builds the process logger. It is created once in main and
// handed to the App with WithLogger; level is one of debug, info, warn,
// error or off.
func NewLogger(level string, out io.Writer) (*log.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	l := log.New("homepage")
	l.SetHeader(logHeader)
	l.SetLevel(lvl)
	if out != nil {
		l.SetOutput(out)
	}
	return l, nil
}

func parseLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("homepage: unknown log level %q", level)
	}
}
