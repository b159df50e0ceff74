package modules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/portrand/log"
)

var (
	shutdownSignal = make(chan struct{})
	shutdownFlag   = abool.NewBool(false)
)

// IsShuttingDown returns whether the global shutdown is in progress.
func IsShuttingDown() bool {
	return shutdownFlag.IsSet()
}

// ShuttingDown returns a channel read on the global shutdown signal.
func ShuttingDown() <-chan struct{} {
	return shutdownSignal
}

// Shutdown stops all modules in the correct order.
func Shutdown() error {
	// lock mgmt
	if !shutdownFlag.SetToIf(false, true) {
		return errors.New("shutdown already initiated")
	}
	close(shutdownSignal)

	if startComplete.IsSet() {
		log.Warning("modules: starting shutdown...")
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	modulesLock.RLock()
	defer modulesLock.RUnlock()

	err := stopModules()
	if err != nil {
		log.Errorf("modules: shutdown completed with errors: %s", err)
	} else {
		log.Info("modules: shutdown complete")
	}

	log.Shutdown()
	return err
}

func stopModules() error {
	var rep *report
	var errs *multierror.Error
	reports := make(chan *report, len(modules))
	execCnt := 0
	reportCnt := 0

	// get number of started modules
	for _, m := range modules {
		if m.Started.IsSet() && !m.Stopped.IsSet() {
			execCnt++
		}
	}
	if execCnt == 0 {
		return nil
	}
	toStop := execCnt
	execCnt = 0

	for {
		// find modules to exec
		for _, m := range modules {
			if m.ReadyToStop() {
				execCnt++
				m.inTransition.Set()

				execM := m
				go func() {
					reports <- &report{
						module: execM,
						err:    execM.stopModule(),
					}
				}()
			}
		}

		// check for dep loop
		if execCnt == reportCnt {
			return multierror.Append(errs, fmt.Errorf("modules: dependency loop detected, cannot continue")).ErrorOrNil()
		}

		// wait for reports
		rep = <-reports
		rep.module.inTransition.UnSet()
		rep.module.Stopped.Set()
		if rep.err != nil {
			errs = multierror.Append(errs, fmt.Errorf("could not stop module %s: %w", rep.module.Name, rep.err))
		} else {
			log.Infof("modules: stopped %s", rep.module.Name)
		}
		reportCnt++

		// exit if done
		if reportCnt == toStop {
			return errs.ErrorOrNil()
		}
	}
}
