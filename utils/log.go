package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sdkerrors "cosmossdk.io/errors"
	zerolog "github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
)

const (
	LOG_TRACE = iota
	LOG_DEBUG
	LOG_INFO
	LOG_WARN
	LOG_ERROR
	NoColor = true
)

var (
	JsonFormat            = false
	defaultGlobalLogLevel = zerolog.DebugLevel
)

type Attribute struct {
	Key   string
	Value interface{}
}

func LogAttr(key string, value interface{}) Attribute {
	return Attribute{Key: key, Value: value}
}

func getLogLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func SetGlobalLoggingLevel(logLevel string) {
	defaultGlobalLogLevel = getLogLevel(logLevel)
	FormatInfo("setting log level", Attribute{Key: "loglevel", Value: logLevel})
}

func StrValue(val interface{}) string {
	st_val := ""
	switch value := val.(type) {
	case bool:
		if value {
			st_val = "true"
		} else {
			st_val = "false"
		}
	case fmt.Stringer:
		st_val = value.String()
	case string:
		st_val = value
	case int:
		st_val = strconv.Itoa(value)
	case int64:
		st_val = strconv.FormatInt(value, 10)
	case uint64:
		st_val = strconv.FormatUint(value, 10)
	case error:
		st_val = value.Error()
	case []string:
		st_val = strings.Join(value, ",")
	// needs to come after stringer so byte inheriting objects will use their string method if implemented
	case []byte:
		st_val = string(value)
	case nil:
		st_val = ""
	default:
		st_val = fmt.Sprintf("%+v", value)
	}
	return st_val
}

// FormatLog logs description with the given attributes and returns an error
// wrapping err with the formatted output, so call sites can both log and
// propagate in one statement.
func FormatLog(description string, err error, attributes []Attribute, severity uint) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if JsonFormat {
		zerologlog.Logger = zerologlog.Output(os.Stderr).Level(defaultGlobalLogLevel)
	} else {
		zerologlog.Logger = zerologlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: NoColor, TimeFormat: time.Stamp}).Level(defaultGlobalLogLevel)
	}

	var logEvent *zerolog.Event
	switch severity {
	case LOG_ERROR:
		logEvent = zerologlog.Error()
	case LOG_WARN:
		logEvent = zerologlog.Warn()
	case LOG_INFO:
		logEvent = zerologlog.Info()
	case LOG_DEBUG:
		logEvent = zerologlog.Debug()
	case LOG_TRACE:
		logEvent = zerologlog.Trace()
	}

	output := description
	attrStrings := []string{}
	if err != nil {
		logEvent = logEvent.Err(err)
		output = fmt.Sprintf("%s ErrMsg: %s", output, err.Error())
	}
	if len(attributes) > 0 {
		for _, attr := range attributes {
			st_val := StrValue(attr.Value)
			logEvent = logEvent.Str(attr.Key, st_val)
			attrStrings = append(attrStrings, fmt.Sprintf("%s:%s", attr.Key, st_val))
		}
		output = fmt.Sprintf("%s {%s}", output, strings.Join(attrStrings, ","))
	}
	logEvent.Msg(description)
	// return the same type as the original error, this handles the nil case as well
	errRet := sdkerrors.Wrap(err, output)
	if errRet == nil { // we always want to return an error if FormatError was called
		return fmt.Errorf("%s", output)
	}
	return errRet
}

func FormatError(description string, err error, attributes ...Attribute) error {
	return FormatLog(description, err, attributes, LOG_ERROR)
}

func FormatWarning(description string, err error, attributes ...Attribute) error {
	return FormatLog(description, err, attributes, LOG_WARN)
}

func FormatInfo(description string, attributes ...Attribute) error {
	return FormatLog(description, nil, attributes, LOG_INFO)
}

func FormatDebug(description string, attributes ...Attribute) error {
	return FormatLog(description, nil, attributes, LOG_DEBUG)
}
