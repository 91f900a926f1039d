// Command ibmkbdconv drives the identification and scan-loop pipeline
// against a chosen transport and prints resolved actions as keys are
// pressed and released. It exists to exercise the converter core outside
// of firmware: as an integration-test harness against the FIFO transport,
// or as a real host-side bridge against a serial-linked adapter.
//
// Usage:
//
//	ibmkbdconv -layout layout.yaml -fifo /tmp/ibmkbd-bus
//	ibmkbdconv -layout layout.yaml -serial /dev/ttyUSB0 -baud 9600
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/hal/fifo"
	"github.com/ardnew/ibmkbd/hal/serialhal"
	"github.com/ardnew/ibmkbd/layout"
	"github.com/ardnew/ibmkbd/lifecycle"
	"github.com/ardnew/ibmkbd/matrix"
	"github.com/ardnew/ibmkbd/pkg"
	"github.com/ardnew/ibmkbd/resolver"
	"github.com/ardnew/ibmkbd/table"
)

const component = pkg.ComponentConverter

// scanInterval is how often the demo loop calls Device.Scan. A real
// firmware scan loop runs far tighter than this; a host process has no
// need to poll faster than a human can type.
const scanInterval = 2 * time.Millisecond

func main() {
	layoutPath := flag.String("layout", "", "path to layout YAML file (required)")
	fifoDir := flag.String("fifo", "", "use the FIFO transport rooted at this directory")
	serialAddr := flag.String("serial", "", "use the serial transport at this device path")
	baud := flag.Int("baud", 9600, "baud rate for -serial")
	verbose := flag.Bool("v", false, "enable verbose (debug) logging")
	jsonLog := flag.Bool("json", false, "use JSON log format")
	flag.Parse()

	if *verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	if *jsonLog {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}

	if *layoutPath == "" {
		pkg.LogError(component, "missing required -layout flag")
		os.Exit(1)
	}

	transport, closeFn, err := buildTransport(*fifoDir, *serialAddr, *baud)
	if err != nil {
		pkg.LogError(component, "failed to build transport", "error", err)
		os.Exit(1)
	}
	defer closeFn()

	if err := transport.Init(); err != nil {
		pkg.LogError(component, "transport init failed", "error", err)
		os.Exit(1)
	}

	actions, names := loadLayout(*layoutPath)
	res := resolver.New(actions)

	host := &demoHost{}
	timer := &wallClockTimer{}
	dev := lifecycle.New(transport, timer, host)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		<-sigCh
		pkg.LogInfo(component, "shutting down")
		close(done)
	}()

	pkg.LogInfo(component, "starting converter", "layout", *layoutPath)

	var prev matrix.Matrix
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			dev.Scan()
			reportTransitions(dev, res, &prev, names)
		}
	}
}

// buildTransport constructs the requested transport implementation and a
// cleanup function to run on exit. Exactly one of fifoDir or serialAddr
// must be non-empty.
func buildTransport(fifoDir, serialAddr string, baud int) (hal.Transport, func(), error) {
	switch {
	case fifoDir != "":
		h := fifo.New(fifoDir)
		return h, func() { h.Close() }, nil
	case serialAddr != "":
		h := serialhal.New(serialAddr, baud)
		return h, func() { h.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("one of -fifo or -serial is required")
	}
}

// loadLayout reads the layout file and assigns each distinct action name a
// sequential table.Action id, returning the built LayerMap and a reverse
// id-to-name lookup for display.
func loadLayout(path string) (table.LayerMap, map[table.Action]string) {
	cfg, err := layout.Load(path)
	if err != nil {
		pkg.LogError(component, "failed to load layout", "error", err)
		os.Exit(1)
	}

	names := map[table.Action]string{}
	ids := map[string]table.Action{}
	next := table.Action(1)

	resolve := func(name string) table.Action {
		if id, ok := ids[name]; ok {
			return id
		}
		id := next
		next++
		ids[name] = id
		names[id] = name
		return id
	}

	return layout.Build(cfg, resolve), names
}

// reportTransitions diffs the device's matrix against prev and prints a
// press/release line for every changed cell, naming its resolved action or
// "?" when the cell resolves to no named action.
func reportTransitions(dev *lifecycle.Device, res *resolver.Resolver, prev *matrix.Matrix, names map[table.Action]string) {
	cur := dev.Matrix()
	for r := uint8(0); r < matrix.Rows; r++ {
		curRow := cur.GetRow(r)
		prevRow := prev.GetRow(r)
		if curRow == prevRow {
			continue
		}
		for c := uint8(0); c < matrix.Cols; c++ {
			bit := uint8(1) << c
			if curRow&bit == prevRow&bit {
				continue
			}
			action := res.Resolve(dev.Family(), 0, resolver.KeyPos{Row: r, Col: c})
			name := names[action]
			if name == "" {
				name = "?"
			}
			if curRow&bit != 0 {
				fmt.Printf("press   %s (row=%d col=%d)\n", name, r, c)
			} else {
				fmt.Printf("release %s (row=%d col=%d)\n", name, r, c)
			}
		}
	}
	*prev = *cur
}

// demoHost is a minimal hal.Host: no LEDs are tracked, and a cleared
// keyboard is just logged for visibility.
type demoHost struct {
	mu   sync.Mutex
	leds hal.HostLEDMask
}

func (h *demoHost) KeyboardLEDs() hal.HostLEDMask {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.leds
}

func (h *demoHost) ClearKeyboard() {
	pkg.LogWarn(component, "host cleared keyboard state")
}

// wallClockTimer implements hal.Timer using the real system clock.
type wallClockTimer struct{}

func (wallClockTimer) Now() hal.Tick {
	return hal.Tick(uint32(time.Now().UnixMilli()))
}

func (wallClockTimer) ElapsedMS(start hal.Tick) uint32 {
	return uint32(wallClockTimer{}.Now()) - uint32(start)
}

var _ hal.Host = (*demoHost)(nil)
var _ hal.Timer = wallClockTimer{}
