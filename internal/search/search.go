package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/ovchar/wa_storefront/internal/models"
)

// Indexer mirrors the product catalog into Elasticsearch. A nil Indexer
// is valid and skips everything.
type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	return &Indexer{ES: es, Index: index}
}

func (ix *Indexer) IndexProduct(ctx context.Context, prod *models.Product) error {
	if ix == nil {
		return nil
	}

	body, err := json.Marshal(prod)
	if err != nil {
		return fmt.Errorf("es: marshal product: %w", err)
	}

	res, err := ix.ES.Index(
		ix.Index,
		bytes.NewReader(body),
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(prod.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("es: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index product: %s", res.Status())
	}
	return nil
}

func (ix *Indexer) DeleteProduct(ctx context.Context, id uint) error {
	if ix == nil {
		return nil
	}

	res, err := ix.ES.Delete(
		ix.Index,
		strconv.FormatUint(uint64(id), 10),
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete product: %s", res.Status())
	}
	return nil
}

func (ix *Indexer) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if ix == nil {
		return 0, nil, fmt.Errorf("es: search is not configured")
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("es: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	if url == "" {
		return nil, nil
	}

	esCfg := elasticsearch.Config{
		Addresses: strings.Split(url, ","),
		Username:  user,
		Password:  password,
	}
	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("es: create client: %w", err)
	}
	return client, nil
}
