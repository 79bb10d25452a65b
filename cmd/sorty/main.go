// Package main provides sorty, an interactive shell for poking at the
// blocksort kernel: generate datasets, sort them with either variant,
// verify the results, run quick timings.
package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"blocksort/internal/gen"
	"blocksort/internal/refsort"
	"blocksort/pkg/blocksort"
)

func main() {
	repl := &REPL{seed: gen.DefaultSeed}

	if err := repl.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var commandNames = []string{
	"gen", "show", "sort", "bz", "ref", "verify", "bench", "seed", "reset", "help", "quit",
}

// REPL is the interactive command loop.
type REPL struct {
	seed  int64
	input []gen.Item // dataset as generated
	items []gen.Item // working copy the sort commands mutate
	liner *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".sorty_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("sorty - blocksort shell (seed=%d)\n", r.seed)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("sorty> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "gen":
			r.cmdGen(args)

		case "show":
			r.cmdShow(args)

		case "sort":
			r.cmdSort("sort", blocksort.Sort[gen.Item])

		case "bz":
			r.cmdSort("bz", blocksort.SortBuffered[gen.Item])

		case "ref":
			r.cmdSort("ref", refsort.Sort[gen.Item])

		case "verify":
			r.cmdVerify()

		case "bench":
			r.cmdBench(args)

		case "seed":
			r.cmdSeed(args)

		case "reset":
			r.items = slices.Clone(r.input)
			fmt.Println("working copy reset to the generated input")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

// completer provides tab completion for command names.
func (r *REPL) completer(line string) []string {
	var out []string

	for _, name := range commandNames {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			out = append(out, name)
		}
	}

	return out
}

func (r *REPL) printHelp() {
	fmt.Println(`Commands:
  gen <name> <size>   Generate a dataset (tab-complete has command names;
                      generator names: ` + generatorNames() + `)
  show [n]            Show the first n values of the working copy (default 20)
  sort                Sort the working copy with the in-place sorter
  bz                  Sort the working copy with the buffered variant
  ref                 Sort the working copy with the reference merge sort
  verify              Check the working copy: sorted, stable, matches reference
  bench <size>        Quick timing on random data of the given size
  seed <n>            Set the generator seed
  reset               Restore the working copy to the generated input
  quit                Exit`)
}

func generatorNames() string {
	names := make([]string, len(gen.Generators))
	for i, g := range gen.Generators {
		names[i] = g.Name
	}

	return strings.Join(names, ", ")
}

func (r *REPL) cmdGen(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: gen <name> <size>")

		return
	}

	g, err := gen.Lookup(args[0])
	if err != nil {
		fmt.Println(err)

		return
	}

	size, err := strconv.Atoi(args[1])
	if err != nil || size < 0 {
		fmt.Printf("invalid size: %q\n", args[1])

		return
	}

	rng := rand.New(rand.NewSource(r.seed))
	r.input = gen.Make(size, g.Fn, rng)
	r.items = slices.Clone(r.input)

	fmt.Printf("generated %s, %d items\n", g.Name, size)
}

func (r *REPL) cmdShow(args []string) {
	if r.items == nil {
		fmt.Println("no dataset; use 'gen' first")

		return
	}

	limit := 20
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fmt.Printf("invalid count: %q\n", args[0])

			return
		}

		limit = n
	}

	limit = min(limit, len(r.items))

	var line strings.Builder
	for i := 0; i < limit; i++ {
		if i > 0 {
			line.WriteByte(' ')
		}

		fmt.Fprintf(&line, "%d(%d)", r.items[i].Value, r.items[i].Index)
	}

	fmt.Println(line.String())

	if limit < len(r.items) {
		fmt.Printf("... %d more\n", len(r.items)-limit)
	}
}

func (r *REPL) cmdSort(name string, fn func([]gen.Item, func(a, b gen.Item) bool)) {
	if r.items == nil {
		fmt.Println("no dataset; use 'gen' first")

		return
	}

	start := time.Now()
	fn(r.items, gen.Less)
	fmt.Printf("%s: %d items in %s\n", name, len(r.items), time.Since(start))
}

func (r *REPL) cmdVerify() {
	if r.items == nil {
		fmt.Println("no dataset; use 'gen' first")

		return
	}

	if err := gen.CheckStable(r.items); err != nil {
		fmt.Println("FAIL:", err)

		return
	}

	want := slices.Clone(r.input)
	refsort.Sort(want, gen.Less)

	for i := range r.items {
		if gen.Less(r.items[i], want[i]) || gen.Less(want[i], r.items[i]) {
			fmt.Printf("FAIL: differs from reference at %d: %d vs %d\n", i, r.items[i].Value, want[i].Value)

			return
		}
	}

	fmt.Println("ok: sorted, stable, matches reference")
}

func (r *REPL) cmdBench(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: bench <size>")

		return
	}

	size, err := strconv.Atoi(args[0])
	if err != nil || size < 0 {
		fmt.Printf("invalid size: %q\n", args[0])

		return
	}

	rng := rand.New(rand.NewSource(r.seed))
	input := gen.Make(size, gen.Random, rng)

	array1 := slices.Clone(input)
	start := time.Now()
	blocksort.Sort(array1, gen.Less)
	blockTime := time.Since(start)

	array2 := slices.Clone(input)
	start = time.Now()
	refsort.Sort(array2, gen.Less)
	refTime := time.Since(start)

	fmt.Printf("[%d] block: %s, merge: %s\n", size, blockTime, refTime)
}

func (r *REPL) cmdSeed(args []string) {
	if len(args) != 1 {
		fmt.Printf("seed = %d\n", r.seed)

		return
	}

	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("invalid seed: %q\n", args[0])

		return
	}

	r.seed = seed
	fmt.Printf("seed = %d\n", r.seed)
}
