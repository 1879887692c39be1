package provisioning

import (
	"fmt"
	"log"
	"os"
)

// Observer receives progress output during a deploy run.
type Observer interface {
	// Printf logs one progress line.
	Printf(format string, args ...any)

	// Tick emits a progress indicator for one unsatisfied poll probe.
	Tick()
}

// ConsoleObserver implements Observer on the standard log package,
// writing to stderr so command output stays clean.
type ConsoleObserver struct {
	logger *log.Logger
}

// NewConsoleObserver creates an Observer writing to stderr.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, args ...any) {
	o.logger.Printf(format, args...)
}

// Tick implements Observer.
func (o *ConsoleObserver) Tick() {
	fmt.Fprint(os.Stderr, ".")
}
