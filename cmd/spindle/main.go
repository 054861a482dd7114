package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"spindle/hal"
	"spindle/internal/buildinfo"
	"spindle/internal/config"

	"github.com/samber/do"
)

func main() {
	var (
		cfgPath  = flag.String("config", config.FileName, "Configuration file.")
		name     = flag.String("scenario", "", "Scenario to run (overrides config).")
		anchors  = flag.Int("anchors", 0, "Anchor count (overrides config).")
		messages = flag.Int("messages", -1, "Messages per channel (overrides config).")
		writeCfg = flag.Bool("write-config", false, "Write the effective configuration to -config and exit.")
		version  = flag.Bool("version", false, "Print version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	i := newInjector(*cfgPath, os.Stdout, func(c *config.Config) {
		if *name != "" {
			c.Demo.Scenario = *name
		}
		if *anchors > 0 {
			c.Demo.Anchors = *anchors
		}
		if *messages >= 0 {
			c.Demo.Messages = *messages
		}
	})
	defer i.Shutdown()

	r, err := do.Invoke[*runner](i)
	if err != nil {
		fatalf("%v", err)
	}

	if *writeCfg {
		if err := config.Save(*cfgPath, r.env.cfg); err != nil {
			fatalf("%v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := r.run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fatalf("%s: %v", r.env.cfg.Demo.Scenario, err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

type runner struct {
	env       env
	scenarios map[string]scenario
}

func (r *runner) run(ctx context.Context) error {
	s, ok := r.scenarios[r.env.cfg.Demo.Scenario]
	if !ok {
		return fmt.Errorf("unknown scenario (have %s)", strings.Join(scenarioNames(r.scenarios), ", "))
	}
	r.env.log.WriteLineString(fmt.Sprintf("spindle %s: %s: %s", buildinfo.Short(), s.name, s.help))
	return s.run(ctx, r.env)
}

// newInjector wires the runner: configuration, log sink and scenario table.
func newInjector(cfgPath string, out io.Writer, override func(*config.Config)) *do.Injector {
	i := do.New()

	do.Provide(i, func(*do.Injector) (config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return config.Config{}, err
		}
		if override != nil {
			override(&cfg)
		}
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	})

	do.Provide(i, func(i *do.Injector) (hal.Logger, error) {
		cfg, err := do.Invoke[config.Config](i)
		if err != nil {
			return nil, err
		}
		switch cfg.Runtime.Log {
		case "stdout":
			return hal.NewLogger(os.Stdout), nil
		case "off":
			return hal.Discard, nil
		default:
			return hal.NewLogger(os.Stderr), nil
		}
	})

	do.ProvideValue(i, scenarios())

	do.Provide(i, func(i *do.Injector) (*runner, error) {
		cfg, err := do.Invoke[config.Config](i)
		if err != nil {
			return nil, err
		}
		log, err := do.Invoke[hal.Logger](i)
		if err != nil {
			return nil, err
		}
		return &runner{
			env:       env{cfg: cfg, log: log, out: out},
			scenarios: do.MustInvoke[map[string]scenario](i),
		}, nil
	})

	return i
}
