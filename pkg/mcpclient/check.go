package mcpclient

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CheckResult reports the preflight outcome for one configured server.
type CheckResult struct {
	Server string
	Tools  []string
	Err    error
}

// Check connects to each configured server and lists its tools. Servers are
// probed concurrently and failures are collected per server instead of
// aborting the sweep, so the user sees the full picture in one pass.
func Check(ctx context.Context, configs []ServerConfig) []CheckResult {
	results := make([]CheckResult, len(configs))

	g, ctx := errgroup.WithContext(ctx)
	for i := range configs {
		g.Go(func() error {
			cfg := &configs[i]
			results[i].Server = cfg.Name

			client, err := Connect(ctx, cfg)
			if err != nil {
				results[i].Err = err
				return nil
			}
			defer func() { _ = client.Close() }()

			results[i].Tools, results[i].Err = client.ListTools(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
