// Command gdsread reads values out of a block-structured database file and
// can run a parallel integrity check against it.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corvidlabs/gdsread/pkg/filesys"
	"github.com/corvidlabs/gdsread/pkg/gdsread"
	"github.com/corvidlabs/gdsread/pkg/options"
)

var (
	flagGlobal       string
	flagSubscripts   string
	flagInteg        bool
	flagIntegThreads int
	flagBlockCache   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdsread INPUT",
		Short: "Read values and check integrity on a block-structured database file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoot,
	}

	cmd.Flags().StringVarP(&flagGlobal, "global", "g", "", "global name to look up")
	cmd.Flags().StringVarP(&flagSubscripts, "subscripts", "s", "", "comma-separated subscripts for the lookup")
	cmd.Flags().BoolVarP(&flagInteg, "integ", "i", false, "run an integrity check instead of a lookup")
	cmd.Flags().IntVarP(&flagIntegThreads, "integ-threads", "t", 0, "worker threads for the integrity check")
	cmd.Flags().IntVar(&flagBlockCache, "block-cache", 0, "number of blocks to cache in memory")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	path := args[0]

	exists, err := filesys.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("database file does not exist: %s", path)
	}

	ctx := context.Background()
	opts := []options.OptionFunc{options.WithDefaultOptions(), options.WithPath(path)}
	if flagIntegThreads > 0 {
		opts = append(opts, options.WithIntegThreads(flagIntegThreads))
	}
	if flagBlockCache > 0 {
		opts = append(opts, options.WithBlockCacheSize(flagBlockCache))
	}

	db, err := gdsread.Open(ctx, opts...)
	if err != nil {
		return err
	}
	defer db.Close()

	if flagInteg {
		return runInteg(ctx, db)
	}
	return runGet(db)
}

func runGet(db *gdsread.Database) error {
	if flagGlobal == "" {
		return fmt.Errorf("--global is required for a lookup")
	}

	var subscripts []string
	if flagSubscripts != "" {
		subscripts = strings.Split(flagSubscripts, ",")
	}

	value, err := db.Get(flagGlobal, subscripts...)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", value)
	return nil
}

func runInteg(ctx context.Context, db *gdsread.Database) error {
	report, err := db.Integ(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("blocks scanned:            %d\n", report.BlocksScanned)
	fmt.Printf("expected busy:             %d\n", report.ExpectedBusy)
	fmt.Printf("incorrectly marked busy:   %d\n", len(report.IncorrectlyMarkedBusy))
	fmt.Printf("incorrectly marked free:   %d\n", len(report.IncorrectlyMarkedFree))
	fmt.Printf("record errors:             %d\n", len(report.RecordErrors))
	fmt.Printf("bitmap errors:             %d\n", len(report.BitmapErrors))

	if !report.Clean() {
		os.Exit(1)
	}
	return nil
}
