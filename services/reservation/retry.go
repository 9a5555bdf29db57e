package reservation

import (
	"errors"
	"time"

	catalogRepo "seatwise/database/repository/catalog"
	ledgerRepo "seatwise/database/repository/ledger"
)

const (
	readRetryAttempts = 3
	readRetryBaseWait = 100 * time.Millisecond
)

// withReadRetry retries a read operation a bounded number of times with
// doubling backoff. Only reads go through here: logical conflicts
// (ErrUnitHeld, failed CAS) are verdicts, not faults, and writes compensate
// instead of retrying.
func withReadRetry(op func() error) error {
	var err error
	wait := readRetryBaseWait
	for attempt := 0; attempt < readRetryAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		// A definite miss is an answer, not a fault.
		if errors.Is(err, ledgerRepo.ErrNotFound) || errors.Is(err, catalogRepo.ErrNotFound) {
			return err
		}
		if attempt < readRetryAttempts-1 {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return err
}
