package badapple

import (
	"context"
	"errors"
	"sync"

	"github.com/lkesteloot/bad-apple-trs-80/frame"
	"github.com/lkesteloot/bad-apple-trs-80/rle"
	"github.com/lkesteloot/bad-apple-trs-80/stream"
)

// Result is the output of Convert, in source frame order.
type Result struct {
	Stream *stream.Stream
	// Runs holds the run-length encoded characters of each frame
	Runs [][]rle.Pair
}

type job struct {
	slot int
	path string
}

// Each worker only writes the slots of the jobs it receives
type results struct {
	runs [][]rle.Pair
	data [][]byte
}

func (c *Converter) feedFrames(ctx context.Context, paths []string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, path := range paths {
			select {
			case out <- job{slot: i, path: path}:
			case <-ctx.Done():
				errc <- errors.New("conversion cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) frameWorker(ctx context.Context, in <-chan job, res *results) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			// Drain the remaining jobs without doing any work
			if ctx.Err() != nil {
				continue
			}

			f, err := frame.Load(j.path)
			if err != nil {
				errc <- err
				return
			}

			runs, data, err := c.EncodeFrame(f)
			if err != nil {
				errc <- err
				return
			}

			c.logger.Printf("%s: %d runs, %d bytes\n", j.path, len(runs), len(data))

			res.runs[j.slot] = runs
			res.data[j.slot] = data
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert loads and encodes the frames stored in paths. The first path is
// numbered first in the stream. Any error aborts the whole conversion.
func (c *Converter) Convert(ctx context.Context, paths []string, first int) (*Result, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	res := &results{
		runs: make([][]rle.Pair, len(paths)),
		data: make([][]byte, len(paths)),
	}

	var errcList []<-chan error

	jobs, errc, err := c.feedFrames(ctx, paths)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.workers; i++ {
		errc, err := c.frameWorker(ctx, jobs, res)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	s := new(stream.Stream)
	for i, data := range res.data {
		if err := s.Add(first+i, data); err != nil {
			return nil, err
		}
	}

	if s.Len() > 0 {
		c.logger.Printf("%d frames, %d bytes, %d bytes per frame\n", s.Len(), s.Size(), s.Size()/s.Len())
	}

	return &Result{
		Stream: s,
		Runs:   res.runs,
	}, nil
}
