package warehouse

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"

	"copra/pkg/common"
	"copra/pkg/recommend"
)

// Client names become table-name suffixes, so only identifier-safe names
// are allowed through.
var clientNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Client reads a client's raw order history and buyer directory from the
// analytical warehouse. The wrapped pool is safe for concurrent use, so one
// Client serves every trainer worker at once.
type Client struct {
	pool *pgxpool.Pool
}

// New wraps a pgx pool as a warehouse client.
func New(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

func validateClientName(client string) error {
	if !clientNamePattern.MatchString(client) {
		return fmt.Errorf("invalid client name %q", client)
	}
	return nil
}

// OrderLines fetches the client's raw order rows in table order.
func (c *Client) OrderLines(ctx context.Context, client string) ([]common.OrderLine, error) {
	if err := validateClientName(client); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT order_ref, product, buyer, seller, supplier FROM order_lines_%s",
		client,
	)
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines for %s: %w", client, err)
	}
	defer rows.Close()

	var lines []common.OrderLine
	for rows.Next() {
		var l common.OrderLine
		if err := rows.Scan(&l.OrderRef, &l.Product, &l.Buyer, &l.Seller, &l.Supplier); err != nil {
			return nil, fmt.Errorf("failed to scan order line for %s: %w", client, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order lines for %s: %w", client, err)
	}
	return lines, nil
}

// Buyers fetches the client's buyer directory in table order.
func (c *Client) Buyers(ctx context.Context, client string) ([]recommend.BuyerSeller, error) {
	if err := validateClientName(client); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT buyer, seller FROM buyer_info_%s", client)
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query buyers for %s: %w", client, err)
	}
	defer rows.Close()

	var buyers []recommend.BuyerSeller
	for rows.Next() {
		var b recommend.BuyerSeller
		if err := rows.Scan(&b.Buyer, &b.Seller); err != nil {
			return nil, fmt.Errorf("failed to scan buyer for %s: %w", client, err)
		}
		buyers = append(buyers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read buyers for %s: %w", client, err)
	}
	return buyers, nil
}
