package logging

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

type sink struct {
	name string
	w    io.Writer
}

// fanout copies every log line to all sinks. A failing sink does not stop the others,
// and the line counts as written as long as one sink took all of it.
type fanout struct {
	sinks []sink
}

func newFanout(sinks ...sink) *fanout {
	return &fanout{sinks: sinks}
}

func (f *fanout) Write(p []byte) (int, error) {
	var (
		errs      error
		delivered bool
	)
	for _, s := range f.sinks {
		n, err := s.w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("log sink %s: %w", s.name, err))
			continue
		}
		delivered = true
	}
	if !delivered {
		return 0, errs
	}
	return len(p), errs
}
