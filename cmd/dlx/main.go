// Command dlx runs a line-oriented difference-logic script through the
// incremental theory engine, printing the result of each push, pop, stats
// and core command as it executes. It exists to demonstrate the engine's
// API end to end, not as a production SMT driver.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crillab/godl/harness"
	"github.com/crillab/godl/theory"
)

var domainFlag string

var rootCmd = &cobra.Command{
	Use:   "dlx [script]",
	Short: "Run a difference-logic script through the incremental theory engine",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func main() {
	rootCmd.Flags().StringVar(&domainFlag, "domain", "real", "numeric domain: real or integer")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// command is one line of the script after the atom declarations.
type command struct {
	op  string
	idx int
	neg bool
}

func run(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("dlx: %w", err)
	}
	defer f.Close()

	domain := theory.Real
	if strings.EqualFold(domainFlag, "integer") {
		domain = theory.Integer
	}

	atoms, commands, err := parseScript(f)
	if err != nil {
		return err
	}

	h, err := harness.New(domain, atoms, nil)
	if err != nil {
		return fmt.Errorf("dlx: %w", err)
	}

	for _, c := range commands {
		switch c.op {
		case "push":
			lit := theory.Lit(c.idx, c.neg)
			ok, err := h.Push(lit)
			if err != nil {
				return err
			}
			fmt.Printf("push %v: sat=%v\n", lit, ok)
		case "pop":
			if err := h.Pop(); err != nil {
				return err
			}
			fmt.Println("pop")
		case "stats":
			s := h.Stats()
			fmt.Printf("stats: push=%d pop=%d propagated=%d unsat=%d\n",
				s.NbPush, s.NbPop, s.NbPropagated, s.NbUnsatDetected)
		case "core":
			core, err := h.Engine.UnsatCore()
			if err != nil {
				return err
			}
			fmt.Printf("core: %v\n", core)
		}
	}
	return nil
}

// parseScript reads every "atom" line into the atom list, in order (the
// order fixes each atom's index and thus its literal encoding), and every
// other recognized line into the command sequence.
func parseScript(f *os.File) ([]theory.Atom, []command, error) {
	var atoms []theory.Atom
	var commands []command
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "atom":
			a, err := parseAtomLine(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("dlx: line %q: %w", line, err)
			}
			atoms = append(atoms, a)
		case "push":
			if len(fields) != 2 {
				return nil, nil, fmt.Errorf("dlx: line %q: push needs exactly one literal", line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, nil, fmt.Errorf("dlx: line %q: %w", line, err)
			}
			if n == 0 {
				return nil, nil, fmt.Errorf("dlx: line %q: literal 0 is not a valid atom index", line)
			}
			idx := n
			if idx < 0 {
				idx = -idx
			}
			commands = append(commands, command{op: "push", idx: idx - 1, neg: n < 0})
		case "pop", "stats", "core":
			commands = append(commands, command{op: fields[0]})
		default:
			return nil, nil, fmt.Errorf("dlx: line %q: unknown command %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("dlx: %w", err)
	}
	return atoms, commands, nil
}

// parseAtomLine reads "<kind> <X> [<Y>] <C>", e.g. "<= x y 3" or "<= x 3"
// for the unary bound "x <= 3". Push lines refer to atoms by their 1-based
// declaration order, with the sign encoding polarity as in DIMACS CNF.
func parseAtomLine(fields []string) (theory.Atom, error) {
	if len(fields) < 3 {
		return theory.Atom{}, fmt.Errorf("atom needs a kind, a term and a constant")
	}
	var kind theory.Kind
	switch fields[0] {
	case "<=":
		kind = theory.LessEq
	case "<":
		kind = theory.LessStrict
	case "=":
		kind = theory.Equal
	default:
		return theory.Atom{}, fmt.Errorf("unknown atom kind %q", fields[0])
	}

	var x, y, cStr string
	switch len(fields) {
	case 3:
		x, cStr = fields[1], fields[2]
	case 4:
		x, y, cStr = fields[1], fields[2], fields[3]
	default:
		return theory.Atom{}, fmt.Errorf("too many fields in atom line")
	}
	c, err := strconv.ParseFloat(cStr, 64)
	if err != nil {
		return theory.Atom{}, fmt.Errorf("bad constant %q: %w", cStr, err)
	}
	return theory.Atom{Kind: kind, X: x, Y: y, C: c}, nil
}
