package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"copra/pkg/common"
)

// Artifact object keys, one object per client per kind. A training run
// fully replaces both objects for its client.
func rulesKey(client string) string {
	return fmt.Sprintf("rules/rules_%s.csv", client)
}

func ordersKey(client string) string {
	return fmt.Sprintf("orders/orders_%s.csv", client)
}

// ArtifactStore persists and loads a client's rule and order-line tables as
// CSV objects in one bucket.
type ArtifactStore struct {
	client *s3.Client
	bucket string
}

// NewArtifactStore wraps an S3 client and bucket as an artifact store.
func NewArtifactStore(client *s3.Client, bucket string) *ArtifactStore {
	return &ArtifactStore{client: client, bucket: bucket}
}

// PutRules replaces the client's rule artifact.
func (s *ArtifactStore) PutRules(ctx context.Context, client string, rules []common.Rule) error {
	body, err := EncodeRules(rules)
	if err != nil {
		return err
	}
	return PutObject(ctx, s.client, s.bucket, rulesKey(client), body, "text/csv")
}

// GetRules loads the client's rule artifact.
func (s *ArtifactStore) GetRules(ctx context.Context, client string) ([]common.Rule, error) {
	body, err := GetObject(ctx, s.client, s.bucket, rulesKey(client))
	if err != nil {
		return nil, err
	}
	return DecodeRules(body)
}

// PutOrders replaces the client's order-line artifact.
func (s *ArtifactStore) PutOrders(ctx context.Context, client string, lines []common.OrderLine) error {
	body, err := EncodeOrders(lines)
	if err != nil {
		return err
	}
	return PutObject(ctx, s.client, s.bucket, ordersKey(client), body, "text/csv")
}

// GetOrders loads the client's order-line artifact.
func (s *ArtifactStore) GetOrders(ctx context.Context, client string) ([]common.OrderLine, error) {
	body, err := GetObject(ctx, s.client, s.bucket, ordersKey(client))
	if err != nil {
		return nil, err
	}
	return DecodeOrders(body)
}

// EncodeRules serializes rules as CSV with columns antecedent, consequent,
// confidence. Set-valued columns use the canonical sorted-and-delimited
// encoding so they parse back into the same sets; confidence keeps full
// float64 precision.
func EncodeRules(rules []common.Rule) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"antecedent", "consequent", "confidence"}); err != nil {
		return nil, fmt.Errorf("failed to write rules header: %w", err)
	}
	for _, r := range rules {
		record := []string{
			common.SetKey(r.Antecedent),
			common.SetKey(r.Consequent),
			strconv.FormatFloat(r.Confidence, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write rule record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush rules csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRules parses a rule artifact produced by EncodeRules.
func DecodeRules(body []byte) ([]common.Rule, error) {
	records, err := readRecords(body, 3, "rules")
	if err != nil {
		return nil, err
	}

	rules := make([]common.Rule, 0, len(records))
	for i, record := range records {
		confidence, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("rules row %d: bad confidence %q: %w", i+1, record[2], err)
		}
		rules = append(rules, common.Rule{
			Antecedent: common.SplitSetKey(record[0]),
			Consequent: common.SplitSetKey(record[1]),
			Confidence: confidence,
		})
	}
	return rules, nil
}

// EncodeOrders serializes order lines as CSV with columns order_ref,
// product, buyer, seller, supplier.
func EncodeOrders(lines []common.OrderLine) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"order_ref", "product", "buyer", "seller", "supplier"}); err != nil {
		return nil, fmt.Errorf("failed to write orders header: %w", err)
	}
	for _, l := range lines {
		if err := w.Write([]string{l.OrderRef, l.Product, l.Buyer, l.Seller, l.Supplier}); err != nil {
			return nil, fmt.Errorf("failed to write order record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush orders csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeOrders parses an order-line artifact produced by EncodeOrders.
func DecodeOrders(body []byte) ([]common.OrderLine, error) {
	records, err := readRecords(body, 5, "orders")
	if err != nil {
		return nil, err
	}

	lines := make([]common.OrderLine, 0, len(records))
	for _, record := range records {
		lines = append(lines, common.OrderLine{
			OrderRef: record[0],
			Product:  record[1],
			Buyer:    record[2],
			Seller:   record[3],
			Supplier: record[4],
		})
	}
	return lines, nil
}

// readRecords parses the CSV body, validates the column count, and strips
// the header row.
func readRecords(body []byte, columns int, kind string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = columns

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s csv: %w", kind, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s csv has no header row", kind)
	}
	return records[1:], nil
}
