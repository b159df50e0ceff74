package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	err := Start()
	if err != nil {
		panic(err)
	}
}

// test waiting
func TestLogging(t *testing.T) {
	// skip
	if testing.Short() {
		t.Skip()
	}

	// set levels (static random)
	SetLogLevel(WarningLevel)
	SetLogLevel(InfoLevel)
	SetLogLevel(ErrorLevel)
	SetLogLevel(DebugLevel)
	SetLogLevel(CriticalLevel)
	SetLogLevel(TraceLevel)

	// log
	Trace("Trace")
	Debug("Debug")
	Info("Info")
	Warning("Warning")
	Error("Error")
	Critical("Critical")

	// logf
	Tracef("Trace %s", "f")
	Debugf("Debug %s", "f")
	Infof("Info %s", "f")
	Warningf("Warning %s", "f")
	Errorf("Error %s", "f")
	Criticalf("Critical %s", "f")

	// play with levels
	SetLogLevel(CriticalLevel)
	Warning("Warning")
	SetLogLevel(TraceLevel)

	// log invalid level
	log(0xFF, "msg")

	// wait logs to be written
	time.Sleep(1 * time.Millisecond)

	// just for show
	UnSetPkgLevels()
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []Severity{TraceLevel, DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel} {
		assert.Equal(t, level, ParseLevel(level.Name()), "level %s should round trip", level)
		assert.Equal(t, level, ParseLevel(strings.ToUpper(level.Name())), "parsing should ignore case")
	}
	assert.Equal(t, Severity(0), ParseLevel("verbose"))
}

func TestParsePkgLevels(t *testing.T) {
	t.Parallel()

	levels, err := ParsePkgLevels("rng=trace,config=warning")
	require.NoError(t, err)
	assert.Equal(t, map[string]Severity{
		"rng":    TraceLevel,
		"config": WarningLevel,
	}, levels)

	levels, err = ParsePkgLevels("")
	require.NoError(t, err)
	assert.Empty(t, levels)

	_, err = ParsePkgLevels("rng")
	assert.Error(t, err, "missing level should fail")
	_, err = ParsePkgLevels("rng=loud")
	assert.Error(t, err, "unknown level should fail")
}

func TestFormatLine(t *testing.T) {
	line := &logLine{
		msg:       "reseeded generator",
		level:     InfoLevel,
		timestamp: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC),
		file:      "/src/portrand/rng/rng",
		line:      42,
	}

	formatted := formatLine(line, 0, false)
	assert.True(t, strings.HasPrefix(formatted, "230102 03:04:05.000"), formatted)
	assert.Contains(t, formatted, "/rng/rng:042")
	assert.Contains(t, formatted, "INFO")
	assert.True(t, strings.HasSuffix(formatted, "reseeded generator"), formatted)
	assert.NotContains(t, formatted, "[", "no duplicate marker expected")

	formatted = formatLine(line, 2, false)
	assert.Contains(t, formatted, " [3x]")
}

func TestOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	writeLine(&logLine{
		msg:       "hello",
		level:     WarningLevel,
		timestamp: time.Now(),
	}, 0)
	SetOutput(os.Stdout)

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "hello")
}

func TestLogLineStatistics(t *testing.T) {
	SetLogLevel(InfoLevel)

	warnings := TotalWarningLogLines()
	errs := TotalErrorLogLines()
	crits := TotalCriticalLogLines()

	Warning("counted warning")
	Error("counted error")
	Critical("counted critical")
	Debug("not counted, level too low")

	assert.Equal(t, warnings+1, TotalWarningLogLines())
	assert.Equal(t, errs+1, TotalErrorLogLines())
	assert.Equal(t, crits+1, TotalCriticalLogLines())
}
