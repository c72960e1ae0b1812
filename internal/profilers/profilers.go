// Package profilers installs the profiling flags of the command-line tools.
//
// Flags: -cpu_profile and -mem_profile write pprof files; -prof serves net/http/pprof on a local
// port while the program runs.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If >= 0, serves the pprof HTTP handlers on localhost at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write a CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write a heap profile to `file` on exit.")
)

// Session holds the profilers started by Setup.
type Session struct {
	cpuFile *os.File
	server  *http.Server
}

// Setup starts the profilers configured by the flags. Call Session.Stop before exiting.
func Setup(ctx context.Context) (*Session, error) {
	s := &Session{}
	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			return nil, errors.Wrap(err, "could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "could not start CPU profile")
		}
		s.cpuFile = f
	}
	if *flagProfiler >= 0 {
		addr := fmt.Sprintf("localhost:%d", *flagProfiler)
		s.server = &http.Server{Addr: addr}
		klog.Infof("pprof available at http://%s/debug/pprof", addr)
		go func() {
			if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				klog.Errorf("pprof server failed: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = s.server.Close()
		}()
	}
	return s, nil
}

// Stop flushes and closes the profiles. It is safe to call on a nil Session.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if *flagMemProfile != "" {
		if err := writeHeapProfile(*flagMemProfile); err != nil {
			klog.Errorf("%+v", err)
		}
	}
	if s.server != nil {
		_ = s.server.Close()
		s.server = nil
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create heap profile")
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "could not write heap profile")
}
