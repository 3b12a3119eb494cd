//go:build !windows

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// registerQuitHandler exits on SIGQUIT without waiting for the current
// dialog or print job. An open printer handle is dropped mid-job, so the
// receipt may be cut short; it is not logged, since a row is only appended
// after the job has been written. Earlier deliveries stay logged.
func registerQuitHandler() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGQUIT)
	go func() {
		sig := <-quit
		fmt.Fprintf(os.Stderr, "%v: abandoning session, printer job may be incomplete\n", sig)
		os.Exit(1)
	}()
}
