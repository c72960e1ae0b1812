// tilechains builds the collision chains of the levels of an LDtk project and prints a summary of
// each level, optionally with a debug overlay of every collision layer.
//
// Example:
//
//	$ tilechains -config=tilechains.yaml -set="level=Level_0;Level_1,scale=2" -overlay
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tilechains/internal/build"
	"github.com/janpfeifer/tilechains/internal/config"
	"github.com/janpfeifer/tilechains/internal/level"
	"github.com/janpfeifer/tilechains/internal/physics"
	"github.com/janpfeifer/tilechains/internal/profilers"
	"github.com/janpfeifer/tilechains/internal/ui/cli"
	"github.com/janpfeifer/tilechains/internal/ui/spinning"
	"golang.org/x/term"
	"k8s.io/klog/v2"
	"os"
	"strings"
	"time"
)

var (
	flagConfig  = flag.String("config", "", "YAML configuration file. If empty, defaults are used.")
	flagProject = flag.String("project", "", "LDtk project file. Overrides the configuration's project.")
	flagSet     = flag.String("set", "", "Configuration overrides, as \"key=value,...\". "+
		"Keys: project, level, collision, scale, pixels_per_meter, friction, restitution, max_loop_vertices. "+
		"Lists (level, collision) are separated by \";\".")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and build "+
		"these many levels simultaneously.")
	flagOverlay = flag.Bool("overlay", false, "Print the debug overlay of each collision layer.")
	flagList    = flag.Bool("list", false, "List the levels of the project and exit.")
	flagColor   = flag.Bool("color", term.IsTerminal(int(os.Stdout.Fd())), "Use colors in the output.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	session := must.M1(profilers.Setup(ctx))
	defer session.Stop()

	cfg := loadConfig()
	klog.V(1).Infof("Configuration:\n%s", cfg)
	if cfg.Project == "" {
		klog.Exitf("No project given: use -project, -set=project=... or the configuration file")
	}
	project, err := level.Load(cfg.Project)
	if err != nil {
		klog.Exitf("%+v", err)
	}
	if *flagList {
		for _, name := range project.LevelNames() {
			fmt.Println(name)
		}
		return
	}

	names := cfg.Levels
	if len(names) == 0 {
		names = project.LevelNames()
	}
	var spinner *spinning.Spinning
	if *flagColor {
		spinner = spinning.New(ctx, os.Stdout, fmt.Sprintf("Building %d level(s)", len(names)),
			spinning.ThemeASCII, 200*time.Millisecond)
	}
	results, err := build.Levels(ctx, project, names, cfg, *flagParallelism, func() physics.World {
		return physics.NewMemoryWorld()
	})
	if spinner != nil {
		spinner.Done()
	}
	if err != nil {
		klog.Exitf("Failed to build levels of %q: %+v", cfg.Project, err)
	}

	ui := cli.New(*flagColor)
	for _, r := range results {
		ui.PrintResult(r, cfg.Collision, *flagOverlay)
		if w, ok := r.World.(*physics.MemoryWorld); ok {
			fmt.Printf("  %d bodies, %d chains, %d segments\n", len(w.Bodies()), w.NumChains(), w.NumSegments())
		}
	}
	dropped := 0
	for _, r := range results {
		if r.Dropped() {
			dropped++
		}
	}
	if dropped > 0 {
		klog.Warningf("%d of %d level(s) dropped geometry, see the summaries above", dropped, len(results))
	}
}

// loadConfig reads the configuration file, if given, and applies the flags on top of it.
func loadConfig() *config.Config {
	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			klog.Exitf("%+v", err)
		}
	}
	if *flagProject != "" {
		cfg.Project = *flagProject
	}
	if strings.TrimSpace(*flagSet) != "" {
		if err := cfg.ApplyOverrides(*flagSet); err != nil {
			klog.Exitf("Invalid -set=%q: %+v", *flagSet, err)
		}
	}
	return cfg
}
