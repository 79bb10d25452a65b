package cli

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"blocksort/internal/gen"
)

var errGenUsage = errors.New("usage: gen <name> <size>")

// GenCmd prints a generated dataset, mostly useful for eyeballing input
// shapes while debugging.
func GenCmd(cfg Config) *Command {
	flags := flag.NewFlagSet("gen", flag.ContinueOnError)
	seed := flags.Int64("seed", cfg.Seed, "Generator seed")

	names := make([]string, len(gen.Generators))
	for i, g := range gen.Generators {
		names[i] = g.Name
	}

	return &Command{
		Flags: flags,
		Usage: "gen <name> <size>",
		Short: "Print a generated dataset",
		Long:  "Print the values of a named input shape.\n\nGenerators: " + strings.Join(names, ", "),
		Exec: func(o *IO, args []string) error {
			if len(args) != 2 {
				return errGenUsage
			}

			g, err := gen.Lookup(args[0])
			if err != nil {
				return err
			}

			size, err := strconv.Atoi(args[1])
			if err != nil || size < 0 {
				return fmt.Errorf("%w: invalid size %q", errGenUsage, args[1])
			}

			rng := rand.New(rand.NewSource(*seed))
			items := gen.Make(size, g.Fn, rng)

			var line strings.Builder
			for i, item := range items {
				if i > 0 {
					line.WriteByte(' ')
				}

				line.WriteString(strconv.Itoa(item.Value))
			}

			o.Println(line.String())

			return nil
		},
	}
}
