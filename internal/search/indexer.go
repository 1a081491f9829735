package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"

	"github.com/Skotchmaster/food_order/internal/models"
)

var ErrDisabled = errors.New("search disabled")

type document struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// Indexer mirrors dishes into an Elasticsearch index. A nil *Indexer is valid
// and turns every write into a no-op.
type Indexer struct {
	es    *elasticsearch.Client
	index string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	return &Indexer{es: es, index: index}
}

func (i *Indexer) IndexDish(ctx context.Context, d *models.Dish) error {
	if i == nil {
		return nil
	}
	body, err := json.Marshal(document{
		ID:        d.ID.String(),
		Name:      d.Name,
		Notes:     d.Notes,
		Category:  d.Category,
		Available: d.Available,
	})
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: d.ID.String(),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("index dish: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index dish", res)
	}
	return nil
}

func (i *Indexer) DeleteDish(ctx context.Context, id uuid.UUID) error {
	if i == nil {
		return nil
	}
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id.String()}
	res, err := req.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete dish", res)
	}
	return nil
}

// Search returns matching dish ids in relevance order plus the total hit count.
func (i *Indexer) Search(ctx context.Context, query string, onlyAvailable bool, offset, limit int) ([]uuid.UUID, int64, error) {
	if i == nil {
		return nil, 0, ErrDisabled
	}

	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "notes", "category"},
				"fuzziness": "AUTO",
			},
		},
	}
	if onlyAvailable {
		boolQuery["filter"] = []any{
			map[string]any{"term": map[string]any{"available": true}},
		}
	}
	body := map[string]any{
		"query":   map[string]any{"bool": boolQuery},
		"from":    offset,
		"size":    limit,
		"_source": false,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, 0, err
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search dishes: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, responseError("search dishes", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, fmt.Errorf("search dishes: decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, r.Hits.Total.Value, nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("%s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
