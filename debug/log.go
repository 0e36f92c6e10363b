package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

var (
	useColor = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	warnTag  = color.New(color.FgYellow).Sprint("warn:")
	errorTag = color.New(color.FgRed).Sprint("error:")
)

// Logf prints a debug line to stderr. Tree-valued arguments render as
// indented canonical JSON. Callers guard with the package gates.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			d, err := gojson.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			d, err := gojson.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Warnf prints a warning line to stderr, colored on a terminal.
func Warnf(msg string, args ...any) {
	tagged(warnTag, "warn:", msg, args...)
}

// Errorf prints an error line to stderr, colored on a terminal.
func Errorf(msg string, args ...any) {
	tagged(errorTag, "error:", msg, args...)
}

func tagged(colored, plain, msg string, args ...any) {
	tag := plain
	if useColor {
		tag = colored
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, tag+" "+msg, args...)
}
