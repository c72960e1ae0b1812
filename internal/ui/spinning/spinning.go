// Package spinning shows a spinner in the terminal while long builds run, and handles interrupts.
package spinning

import (
	"context"
	"fmt"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ThemeASCII is the default theme.
var ThemeASCII = []rune(`|/-\`)

// Spinning is a running spinner. Stop it with Done.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

// SafeInterrupt captures SIGINT (Ctrl+C) and SIGTERM and calls onInterrupt. If the program is
// still running after gracePeriod, it resets the terminal and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Interrupted (signal %q), shutting down in %s", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset(os.Stdout)
		klog.Exitf("Grace period of %s expired, exiting.", gracePeriod)
	}()
}

// Reset makes the cursor visible and restores the default colors.
func Reset(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h\033[39;49;0m\n")
}

// New starts a spinner written to w with the given theme after label, every period.
// It stops when ctx is done or Done is called.
func New(ctx context.Context, w io.Writer, label string, theme []rune, period time.Duration) *Spinning {
	s := &Spinning{}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		_, _ = fmt.Fprint(w, "\033[?25l") // Hide cursor.
		defer func() { _, _ = fmt.Fprint(w, "\r\033[0K\033[?25h") }()
		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(w, "\r%s %c", label, theme[idx])
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinner and clears its line.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
