// Command termmatchdemo builds a handful of sample expressions directly
// through the construction API, compiles a many-to-one matcher over a
// small pattern set, and reports what matched, with humanized counters and
// colorized terminal output. It is a demonstration harness, not a surface
// syntax for expressions.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"termmatch/discrimination"
	"termmatch/expr"
	"termmatch/internal/diagnostics"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		fmt.Println("termmatchdemo", version)
		return
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termmatchdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	f, err := expr.NewOperation("f", expr.Variadic)
	if err != nil {
		return err
	}
	fc, err := expr.NewOperation("g", expr.Variadic, expr.Commutative())
	if err != nil {
		return err
	}
	a, _ := expr.NewSymbol("a")
	b, _ := expr.NewSymbol("b")
	c, _ := expr.NewSymbol("c")

	x, err := expr.VariableDot("x")
	if err != nil {
		return err
	}
	y, err := expr.VariableStar("y")
	if err != nil {
		return err
	}

	p1, err := expr.NewOperationExpr(f, []expr.Expression{x, y})
	if err != nil {
		return err
	}
	x2, _ := expr.VariableDot("x")
	y2, _ := expr.VariableDot("y")
	p2, err := expr.NewOperationExpr(fc, []expr.Expression{x2, y2})
	if err != nil {
		return err
	}

	net, err := discrimination.NewManyToOneMatcher(p1, p2)
	if err != nil {
		return err
	}

	subjects := []expr.Expression{
		mustOperation(f, a, b, c),
		mustOperation(fc, a, b),
	}

	start := time.Now()
	stats := diagnostics.MatchStats{Patterns: net.Len(), Subjects: len(subjects)}
	perSubject, err := net.MatchAllConcurrent(context.Background(), subjects, 4)
	if err != nil {
		return err
	}
	for i, rs := range perSubject {
		stats.Candidates++
		for _, r := range rs {
			stats.Matches++
			printResult(colorize, subjects[i], r)
		}
	}
	stats.Elapsed = time.Since(start).Seconds()

	fmt.Println(stats.String())
	fmt.Println("net", net.ID(), diagnostics.Dump(net.Stats()))
	return nil
}

func mustOperation(head *expr.OperationHead, operands ...expr.Expression) expr.Expression {
	e, err := expr.NewOperationExpr(head, operands)
	if err != nil {
		panic(err)
	}
	return e
}

func printResult(colorize bool, subject expr.Expression, r discrimination.Result) {
	label := fmt.Sprintf("pattern #%d", r.Index)
	if colorize {
		fmt.Printf("\x1b[32m%s\x1b[0m matched %s -> %s\n", label, subject, diagnostics.Dump(r.Subst))
		return
	}
	fmt.Printf("%s matched %s -> %s\n", label, subject, diagnostics.Dump(r.Subst))
}
