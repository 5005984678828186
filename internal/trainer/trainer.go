package trainer

import (
	"context"
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"

	"copra/pkg/common"
	"copra/pkg/logger"
	"copra/pkg/mining"
)

// Source provides a client's raw order history.
type Source interface {
	OrderLines(ctx context.Context, client string) ([]common.OrderLine, error)
}

// Sink persists a client's training outputs, fully replacing the previous
// run's artifacts.
type Sink interface {
	PutRules(ctx context.Context, client string, rules []common.Rule) error
	PutOrders(ctx context.Context, client string, lines []common.OrderLine) error
}

// Params configures a training run.
type Params struct {
	MinSupport    float64
	MinConfidence float64
	// Workers bounds how many client pipelines run at once.
	Workers int
}

// Result records the outcome of one client's pipeline within a run. A run
// with some failed results is still a completed run; failures never cross
// client boundaries.
type Result struct {
	Client string
	Rules  int
	Err    error
}

// Run executes the full training pipeline for every client: fetch order
// lines, pivot into transactions, mine rules, persist rules and orders.
// Clients run concurrently across a bounded worker pool; each client's
// error is captured in its Result and the rest proceed. There are no
// retries. Results come back in the input client order.
func Run(ctx context.Context, src Source, sink Sink, clients []string, params Params) []Result {
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}

	runID, err := gonanoid.New()
	if err != nil {
		runID = "unknown"
	}
	logger.Info("Starting training run", "run_id", runID, "clients", len(clients), "workers", workers)

	results := make([]Result, len(clients))
	var mu sync.Mutex

	// Plain errgroup, never WithContext: one client's failure must not
	// cancel the siblings.
	var g errgroup.Group
	g.SetLimit(workers)
	for i, client := range clients {
		g.Go(func() error {
			rules, err := processClient(ctx, src, sink, client, params)
			if err != nil {
				logger.Error("Client training failed", "run_id", runID, "client", client, "err", err)
			} else {
				logger.Info("Client training finished", "run_id", runID, "client", client, "rules", rules)
			}
			mu.Lock()
			results[i] = Result{Client: client, Rules: rules, Err: err}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("Training run finished", "run_id", runID, "succeeded", len(results)-failed, "failed", failed)
	return results
}

// ProcessClient runs the training pipeline for a single client, as used by
// queue-driven retraining.
func ProcessClient(ctx context.Context, src Source, sink Sink, client string, params Params) error {
	_, err := processClient(ctx, src, sink, client, params)
	return err
}

func processClient(ctx context.Context, src Source, sink Sink, client string, params Params) (int, error) {
	logger.Info("Fetching order lines", "client", client)
	lines, err := src.OrderLines(ctx, client)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch order lines: %w", err)
	}

	logger.Info("Pivoting orders", "client", client, "lines", len(lines))
	pivot := mining.Pivot(lines)
	transactions := pivot.Transactions()

	logger.Info("Mining rules", "client", client, "transactions", len(transactions))
	rules := mining.MineRules(transactions, params.MinSupport, params.MinConfidence)

	logger.Info("Uploading artifacts", "client", client, "rules", len(rules))
	if err := sink.PutRules(ctx, client, rules); err != nil {
		return 0, fmt.Errorf("failed to persist rules: %w", err)
	}
	if err := sink.PutOrders(ctx, client, lines); err != nil {
		return 0, fmt.Errorf("failed to persist orders: %w", err)
	}

	return len(rules), nil
}
