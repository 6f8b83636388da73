package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mman/dynamic"
	"github.com/mman/dynamic/errors"
	"github.com/mman/dynamic/selector"
	"github.com/mman/dynamic/signature"
)

// Demo targets the CLI can invoke on.

type Calculator struct{}

func (Calculator) Add(a, b int) int        { return a + b }
func (Calculator) Sub(a, b int) int        { return a - b }
func (Calculator) Scale(f float64) float64 { return f * 2 }
func (Calculator) Describe() string        { return "a small calculator" }

type Greeter struct{}

func (Greeter) Greet(name string) string { return "Hello, " + name + "!" }
func (Greeter) Shout(s string) string    { return strings.ToUpper(s) }

type Counter struct{ n int }

func (c *Counter) Increment() { c.n++ }
func (c *Counter) Value() int { return c.n }
func (c *Counter) Reset()     { c.n = 0 }

// Targets persist for the process so stateful ones keep their state across
// interactive invocations.
var demoTargets = map[string]any{
	"calculator": Calculator{},
	"greeter":    Greeter{},
	"counter":    &Counter{},
}

func targets() map[string]any {
	return demoTargets
}

func main() {
	var (
		targetName  = flag.String("target", "", "Target to invoke on")
		sel         = flag.String("sel", "", "Method selector, e.g. add:_:")
		argsStr     = flag.String("args", "", "Arguments (comma-separated)")
		list        = flag.Bool("list", false, "List targets and resolvable methods, then exit")
		verbose     = flag.Bool("v", false, "Trace every invocation step")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dynamic.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		listTargets()
		return
	}

	if *targetName == "" || *sel == "" {
		fmt.Fprintln(os.Stderr, "Usage: invoke -target <name> -sel <selector> [-args a,b,...]")
		fmt.Fprintln(os.Stderr, "       invoke -list")
		fmt.Fprintln(os.Stderr, "       invoke -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*targetName, *sel, *argsStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listTargets() {
	reg := targets()
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s:\n", name)
		for _, info := range signature.Methods(reg[name]) {
			fmt.Printf("  %s  (%s) -> %s\n", info.Selector, info.ArgTypes, info.ReturnType)
		}
	}
}

func run(targetName, spelling, argsStr string) error {
	target, ok := targets()[targetName]
	if !ok {
		return fmt.Errorf("unknown target %q (try -list)", targetName)
	}

	inv, err := dynamic.NewInvocation(target, selector.Sel(spelling))
	if err != nil {
		return err
	}
	defer inv.Close()

	var rawArgs []string
	if argsStr != "" {
		rawArgs = strings.Split(argsStr, ",")
	}
	if want := inv.NumberOfArguments() - 2; len(rawArgs) != want {
		return fmt.Errorf("selector %s takes %d argument(s), got %d", spelling, want, len(rawArgs))
	}

	for i, raw := range rawArgs {
		value, err := coerce(raw, inv.ArgumentTypeString(i+2))
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		inv.SetArgument(value, i+1)
	}

	inv.Invoke()

	if !inv.ReturnsAny() {
		fmt.Println("(void)")
		return nil
	}
	result, _ := inv.ReturnValue()
	fmt.Printf("%v\n", result)
	return nil
}

// coerce parses a CLI string into the Go value a descriptor code expects.
// Object-typed slots cannot be filled from a flag string; everything else
// parses per its descriptor code, strings pass through.
func coerce(raw, code string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch code {
	case signature.KindObject.String():
		return nil, errors.Unsupported(errors.PhaseMarshal, "object arguments cannot be built from a string")
	case signature.KindBool.String():
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseMarshal, errors.KindTypeMismatch, err, "not a boolean")
		}
		return v, nil
	case signature.KindInt8.String(), signature.KindInt16.String(),
		signature.KindInt32.String(), signature.KindInt64.String():
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseMarshal, errors.KindTypeMismatch, err, "not an integer")
		}
		return int(n), nil
	case signature.KindUint8.String(), signature.KindUint16.String(),
		signature.KindUint32.String(), signature.KindUint64.String():
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseMarshal, errors.KindTypeMismatch, err, "not an unsigned integer")
		}
		return uint(n), nil
	case signature.KindFloat32.String(), signature.KindFloat64.String():
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseMarshal, errors.KindTypeMismatch, err, "not a number")
		}
		return v, nil
	default:
		return raw, nil
	}
}
