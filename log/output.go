package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	outputLock sync.Mutex
	output     io.Writer = os.Stdout
	useColor             = true
)

// SetOutput sets the writer log lines are written to. Colors are only used for os.Stdout and os.Stderr.
func SetOutput(w io.Writer) {
	outputLock.Lock()
	defer outputLock.Unlock()

	output = w
	useColor = w == os.Stdout || w == os.Stderr
}

func writeLine(line *logLine, duplicates uint64) {
	outputLock.Lock()
	defer outputLock.Unlock()

	fmt.Fprintln(output, formatLine(line, duplicates, useColor))
}

func startWriter() {
	shutdownWaitGroup.Add(1)
	go writer()
}

func writer() {
	defer shutdownWaitGroup.Done()

	var lastLine *logLine
	var duplicates uint64

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
		}

		// write all the logs!
	writeLoop:
		for {
			select {
			case line := <-logBuffer:
				// deduplicate consecutive lines
				if lastLine != nil && line.Equal(lastLine) {
					duplicates++
					continue writeLoop
				}
				if lastLine != nil {
					writeLine(lastLine, duplicates)
				}
				lastLine = line
				duplicates = 0
			default:
				if lastLine != nil {
					writeLine(lastLine, duplicates)
					lastLine = nil
					duplicates = 0
				}
				break writeLoop
			}
		}

		// check for shutdown
		select {
		case <-shutdownSignal:
			writeLine(&logLine{
				msg:       "===== LOGGING STOPPED =====",
				level:     WarningLevel,
				timestamp: time.Now(),
			}, 0)
			return
		default:
		}

		// back off a little
		select {
		case <-time.After(10 * time.Millisecond):
		case <-shutdownSignal:
		}
	}
}
