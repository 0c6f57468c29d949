package output

import (
	"fmt"
	"io"
	"os"
)

type Class int

const (
	Required Class = iota
	Error
	Normal
	Verbose
)

// Printer filters user-facing messages by verbosity class. Error output goes
// to the diagnosis stream, everything else to the terminal stream.
type Printer struct {
	classes   map[Class]bool
	terminal  io.Writer
	diagnosis io.Writer
}

func NewPrinter(include []Class) (p Printer) {
	p = Printer{
		classes:   map[Class]bool{},
		terminal:  os.Stdout,
		diagnosis: os.Stderr,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := &p.terminal
	if class == Error {
		target = &p.diagnosis
	}
	fmt.Fprintf(*target, format, values...)
}
