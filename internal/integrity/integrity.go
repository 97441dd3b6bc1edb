package integrity

import (
	"context"
)

// Run performs a full integrity check: it scans every local bitmap to
// learn which blocks are expected to be busy, then concurrently walks
// every block reachable from the directory tree, and finally reconciles
// the two into a Report.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	if c.log != nil {
		c.log.Infow("starting integrity check", "threads", c.threads)
	}

	expectedBusy, bitmapErrors := c.scanBitmaps()
	if c.log != nil {
		c.log.Infow("bitmap scan complete", "expectedBusy", len(expectedBusy), "bitmapErrors", len(bitmapErrors))
	}

	result, err := c.traverse(ctx, expectedBusy)
	if err != nil {
		return nil, err
	}

	report := &Report{
		BlocksScanned: len(result.visited),
		ExpectedBusy:  len(expectedBusy),
		RecordErrors:  result.recordErrors,
		BitmapErrors:  bitmapErrors,
	}
	report.IncorrectlyMarkedFree = append(report.IncorrectlyMarkedFree, result.freeButUsed...)

	for blockNum := range expectedBusy {
		if !result.visited[blockNum] {
			report.IncorrectlyMarkedBusy = append(report.IncorrectlyMarkedBusy, blockNum)
		}
	}

	if c.log != nil {
		c.log.Infow("integrity check complete",
			"blocksScanned", report.BlocksScanned,
			"incorrectlyMarkedBusy", len(report.IncorrectlyMarkedBusy),
			"incorrectlyMarkedFree", len(report.IncorrectlyMarkedFree),
			"recordErrors", len(report.RecordErrors),
		)
	}

	return report, nil
}
