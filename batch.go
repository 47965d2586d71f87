// SPDX-License-Identifier: EPL-2.0

package healtone

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/synth"
)

// Request is one independent render of a batch.
type Request struct {
	Name    string
	Spec    synth.ToneSpec
	Options RenderOptions
}

// RenderBatch renders reqs on up to workers goroutines (GOMAXPROCS when
// workers <= 0). Results are in request order. The first failure cancels
// the requests that have not started yet and is returned.
func RenderBatch(ctx context.Context, reqs []Request, workers int) ([]*audio.Buffer, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logrus.WithFields(logrus.Fields{
		"function": "RenderBatch",
		"requests": len(reqs),
		"workers":  workers,
	}).Info("Rendering batch")

	out := make([]*audio.Buffer, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			buf, err := Render(req.Spec, req.Options)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "RenderBatch",
					"index":    i,
					"name":     req.Name,
					"error":    err.Error(),
				}).Error("Request failed")
				return fmt.Errorf("request %d %q: %w", i, req.Name, err)
			}

			out[i] = buf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancelled before any request failed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// SolfeggioRequests builds one pure-tone request per solfeggio frequency.
func SolfeggioRequests(frequencies []float64, durationS float64, harmonics synth.HarmonicProfile, quality synth.Quality, opts RenderOptions) ([]Request, error) {
	reqs := make([]Request, 0, len(frequencies))
	for _, f := range frequencies {
		spec, err := synth.NewToneSpec(synth.Pure, f, 0, durationS, harmonics, quality)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, Request{
			Name:    fmt.Sprintf("solfeggio_%ghz", f),
			Spec:    spec,
			Options: opts,
		})
	}

	return reqs, nil
}
