package engine

import (
	"fmt"
	"io"
	"log"
	"os"
)

// openLog returns a logger appending to path, or one that discards
// everything when path is empty. The closer is nil for the discard case.
func openLog(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open engine log: %w", err)
	}
	return log.New(f, "ferrous ", log.LstdFlags|log.Lmicroseconds), f, nil
}
