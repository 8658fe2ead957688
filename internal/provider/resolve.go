package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"pelisplus/internal/media"
)

// Videos resolves an episode page into the videos of every player option.
// Only the episode page fetch is fatal; a failing option, player or host
// contributes nothing. Output order follows option order whatever the
// worker count.
func (p *PelisPlusHD) Videos(ctx context.Context, episodeURL string) ([]media.Video, error) {
	u, err := p.resolve(episodeURL)
	if err != nil {
		return nil, err
	}
	doc, err := p.fetchDocument(ctx, u, false)
	if err != nil {
		return nil, fmt.Errorf("getting episode page: %w", err)
	}

	endpoints := optionEndpoints(doc)
	p.log.Debug("player options", "url", u, "count", len(endpoints))

	results := make([][]media.Video, len(endpoints))
	parallelExecute(p.workers, len(endpoints), func(i int) {
		results[i] = p.resolveOption(ctx, endpoints[i])
	})
	return lo.Flatten(results), nil
}

// resolveOption fetches one option page and resolves each player on it.
func (p *PelisPlusHD) resolveOption(ctx context.Context, endpoint string) []media.Video {
	if ctx.Err() != nil {
		return nil
	}
	doc, err := p.fetchDocument(ctx, endpoint, false)
	if err != nil {
		p.log.Debug("option page unavailable", "option", endpoint, "err", err)
		return nil
	}

	var videos []media.Video
	for _, opt := range parsePlayerOptions(doc) {
		res := p.resolvePlayer(ctx, opt)
		if res.IsError() {
			p.log.Debug("player discarded", "option", endpoint, "lang", opt.Lang, "err", res.Error())
			continue
		}
		videos = append(videos, res.MustGet()...)
	}
	return videos
}

// resolvePlayer runs one player string through extraction, normalization
// and host dispatch.
func (p *PelisPlusHD) resolvePlayer(ctx context.Context, opt media.PlayerOption) mo.Result[[]media.Video] {
	raw, err := ExtractPlayerURL(opt.Raw)
	hostURL, err := mo.TupleToResult(raw, err).
		FlatMap(func(raw string) mo.Result[string] {
			u, err := p.NormalizeURL(ctx, raw)
			return mo.TupleToResult(u, err)
		}).
		Get()
	if err != nil {
		return mo.Err[[]media.Video](err)
	}
	p.log.Debug("dispatching", "url", hostURL, "lang", opt.Lang)
	return p.resolver.Resolve(ctx, hostURL, string(opt.Lang))
}

// parallelExecute runs task(0..n-1) on at most workers goroutines and
// waits for all of them.
func parallelExecute(workers, n int, task func(i int)) {
	if n == 0 {
		return
	}
	workers = min(max(workers, 1), n)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			task(i)
		}()
	}
	wg.Wait()
}
