package changewallpaperlib

import (
	"fmt"
	"io"
	"os"
)

// Output is the user-facing channel. Silent drops everything written to it,
// errors included, logging still happens through the log package.
type Output struct {
	W      io.Writer
	Silent bool
}

func NewOutput(silent bool) *Output {
	return &Output{W: os.Stdout, Silent: silent}
}

func (o *Output) Printf(format string, args ...interface{}) {
	if o == nil || o.Silent {
		return
	}
	fmt.Fprintf(o.W, format, args...)
}

func (o *Output) Println(args ...interface{}) {
	if o == nil || o.Silent {
		return
	}
	fmt.Fprintln(o.W, args...)
}
