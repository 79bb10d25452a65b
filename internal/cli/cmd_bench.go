package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	"blocksort/internal/gen"
	"blocksort/internal/refsort"
	"blocksort/pkg/blocksort"
)

// benchResult is one timed size in the JSON results file.
type benchResult struct {
	Size             int     `json:"size"`
	BlockSeconds     float64 `json:"block_seconds"`
	ReferenceSeconds float64 `json:"reference_seconds"`
}

// benchReport is the JSON results file written by --out.
type benchReport struct {
	Seed                  int64         `json:"seed"`
	Step                  int           `json:"step"`
	MaxSize               int           `json:"max_size"`
	TotalBlockSeconds     float64       `json:"total_block_seconds"`
	TotalReferenceSeconds float64       `json:"total_reference_seconds"`
	MaxRSSKiB             int64         `json:"max_rss_kib"`
	Results               []benchResult `json:"results"`
}

// BenchCmd times the in-place sorter against the reference merge sort
// over a ramp of sizes.
func BenchCmd(cfg Config) *Command {
	flags := flag.NewFlagSet("bench", flag.ContinueOnError)
	maxSize := flags.Int("max", cfg.MaxSize, "Largest dataset size (exclusive)")
	step := flags.Int("step", cfg.Step, "Size increment between runs")
	seed := flags.Int64("seed", cfg.Seed, "Generator seed")
	verify := flags.Bool("verify", true, "Verify every timed result")
	out := flags.String("out", "", "Write JSON results to `file` (atomically)")

	return &Command{
		Flags: flags,
		Usage: "bench [flags]",
		Short: "Time the sorter against the reference merge sort",
		Long: `Time both sorters on random data at sizes stepping up to the maximum,
printing one line per size. Every timed result is verified against the
reference unless --verify=false. The final summary includes the process
max RSS, making the fixed-memory behavior of the in-place sorter
observable next to the reference's O(N) scratch allocations.`,
		Exec: func(o *IO, _ []string) error {
			return runBench(o, *maxSize, *step, *seed, *verify, *out)
		},
	}
}

func runBench(o *IO, maxSize, step int, seed int64, verify bool, outPath string) error {
	rng := rand.New(rand.NewSource(seed))

	var totalBlock, totalReference float64
	var results []benchResult

	started := time.Now()

	for total := 0; total < maxSize; total += step {
		input := gen.Make(total, gen.Random, rng)

		array1 := slices.Clone(input)
		blockStart := time.Now()
		blocksort.Sort(array1, gen.Less)
		blockSeconds := time.Since(blockStart).Seconds()
		totalBlock += blockSeconds

		array2 := slices.Clone(input)
		referenceStart := time.Now()
		refsort.Sort(array2, gen.Less)
		referenceSeconds := time.Since(referenceStart).Seconds()
		totalReference += referenceSeconds

		ratio := 0.0
		if blockSeconds > 0 {
			ratio = referenceSeconds / blockSeconds * 100
		}

		o.Printf("[%d] block: %f, merge: %f (%f%%)\n", total, blockSeconds, referenceSeconds, ratio)

		if verify {
			if err := checkAgainstReference(array1, array2); err != nil {
				return fmt.Errorf("%w: size %d: %w", errVerifyFailed, total, err)
			}

			if err := gen.CheckStable(array1); err != nil {
				return fmt.Errorf("%w: size %d: %w", errVerifyFailed, total, err)
			}
		}

		results = append(results, benchResult{
			Size:             total,
			BlockSeconds:     blockSeconds,
			ReferenceSeconds: referenceSeconds,
		})
	}

	maxRSS := maxRSSKiB()

	o.Printf("benchmark completed in %f seconds\n", time.Since(started).Seconds())

	totalRatio := 0.0
	if totalBlock > 0 {
		totalRatio = totalReference / totalBlock * 100
	}

	o.Printf("block: %f, merge: %f (%f%%)\n", totalBlock, totalReference, totalRatio)
	o.Printf("max rss: %d KiB\n", maxRSS)

	if outPath == "" {
		return nil
	}

	report := benchReport{
		Seed:                  seed,
		Step:                  step,
		MaxSize:               maxSize,
		TotalBlockSeconds:     totalBlock,
		TotalReferenceSeconds: totalReference,
		MaxRSSKiB:             maxRSS,
		Results:               results,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if err := atomic.WriteFile(outPath, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	o.Println("results written to", outPath)

	return nil
}

// maxRSSKiB reports the peak resident set size of this process.
func maxRSSKiB() int64 {
	var usage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &usage); err != nil {
		return 0
	}

	return usage.Maxrss
}
