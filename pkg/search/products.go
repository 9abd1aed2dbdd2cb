package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
)

// ProductDoc is the indexed view of a product.
type ProductDoc struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Available   bool   `json:"available"`
}

type ProductIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewProductIndex(es *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{ES: es, Index: index}
}

func (p *ProductIndex) IndexProduct(ctx context.Context, doc ProductDoc) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode product doc: %w", err)
	}

	res, err := p.ES.Index(
		p.Index,
		&buf,
		p.ES.Index.WithContext(ctx),
		p.ES.Index.WithDocumentID(strconv.FormatUint(uint64(doc.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index product", res.StatusCode, res.Body)
	}
	return nil
}

func (p *ProductIndex) DeleteProduct(ctx context.Context, id uint) error {
	res, err := p.ES.Delete(p.Index, strconv.FormatUint(uint64(id), 10), p.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete product", res.StatusCode, res.Body)
	}
	return nil
}

// SearchProducts returns the total hit count and the matching product ids
// for one page.
func (p *ProductIndex) SearchProducts(ctx context.Context, query string, from, size int) (int64, []uint, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name", "description", "category"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"available": true},
				},
			},
		},
		"from":    from,
		"size":    size,
		"_source": []string{"id"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := p.ES.Search(
		p.ES.Search.WithContext(ctx),
		p.ES.Search.WithIndex(p.Index),
		p.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search products", res.StatusCode, res.Body)
	}

	return decodeHits(res.Body)
}

func decodeHits(r io.Reader) (int64, []uint, error) {
	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ProductDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return 0, nil, fmt.Errorf("decode search: %w", err)
	}

	ids := make([]uint, len(out.Hits.Hits))
	for i, hit := range out.Hits.Hits {
		ids[i] = hit.Source.ID
	}
	return out.Hits.Total.Value, ids, nil
}

func responseError(op string, status int, body io.Reader) error {
	b, _ := io.ReadAll(body)
	return fmt.Errorf("%s: status %d: %s", op, status, b)
}
