package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

// Client — минимальный REST-клиент ChromaDB (API v1).
// Коллекция создаётся при первом обращении (get_or_create), её UUID
// кэшируется на время жизни процесса.
type Client struct {
	baseURL    string
	collection string

	mu           sync.Mutex
	collectionID string

	httpDo *http.Client
}

type Config struct {
	URL        string
	Collection string
	Timeout    time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "jobs"
	}
	return &Client{
		baseURL:    cfg.URL,
		collection: collection,
		httpDo:     &http.Client{Timeout: timeout},
	}
}

// ensureCollection resolves the collection UUID, creating it if missing.
func (c *Client) ensureCollection(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.collectionID != "" {
		return c.collectionID, nil
	}
	body := map[string]any{
		"name":          c.collection,
		"get_or_create": true,
		"metadata":      map[string]any{"hnsw:space": "l2"},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/collections", body, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: collection %q has no id", vectorstore.ErrUnavailable, c.collection)
	}
	c.collectionID = resp.ID
	return c.collectionID, nil
}

func (c *Client) Upsert(ctx context.Context, records []vectorstore.Record) error {
	if len(records) == 0 {
		return nil
	}
	id, err := c.ensureCollection(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, len(records))
	embeddings := make([][]float32, len(records))
	documents := make([]string, len(records))
	metadatas := make([]map[string]string, len(records))
	for i, r := range records {
		ids[i] = r.Reference
		embeddings[i] = r.Embedding
		documents[i] = r.Document
		metadatas[i] = r.Metadata
	}
	body := map[string]any{
		"ids":        ids,
		"embeddings": embeddings,
		"documents":  documents,
		"metadatas":  metadatas,
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/upsert", c.baseURL, id)
	return c.postJSON(ctx, url, body, nil)
}

func (c *Client) Query(ctx context.Context, embedding []float32, k int) ([]vectorstore.QueryResult, error) {
	if k <= 0 {
		k = 5
	}
	id, err := c.ensureCollection(ctx)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"query_embeddings": [][]float32{embedding},
		"n_results":        k,
		"include":          []string{"distances", "documents", "metadatas"},
	}
	var resp struct {
		IDs       [][]string            `json:"ids"`
		Distances [][]float64           `json:"distances"`
		Documents [][]string            `json:"documents"`
		Metadatas [][]map[string]string `json:"metadatas"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/query", c.baseURL, id)
	if err := c.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}
	results := make([]vectorstore.QueryResult, 0, len(resp.IDs[0]))
	for i, ref := range resp.IDs[0] {
		qr := vectorstore.QueryResult{Reference: ref}
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			qr.Distance = resp.Distances[0][i]
		}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			qr.Document = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			qr.Metadata = resp.Metadatas[0][i]
		}
		results = append(results, qr)
	}
	return results, nil
}

func (c *Client) Get(ctx context.Context, references []string) ([]vectorstore.Record, error) {
	id, err := c.ensureCollection(ctx)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"ids":     references,
		"include": []string{"embeddings", "documents", "metadatas"},
	}
	var resp struct {
		IDs        []string            `json:"ids"`
		Embeddings [][]float32         `json:"embeddings"`
		Documents  []string            `json:"documents"`
		Metadatas  []map[string]string `json:"metadatas"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/get", c.baseURL, id)
	if err := c.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}
	records := make([]vectorstore.Record, 0, len(resp.IDs))
	for i, ref := range resp.IDs {
		r := vectorstore.Record{Reference: ref}
		if i < len(resp.Embeddings) {
			r.Embedding = resp.Embeddings[i]
		}
		if i < len(resp.Documents) {
			r.Document = resp.Documents[i]
		}
		if i < len(resp.Metadatas) {
			r.Metadata = resp.Metadatas[i]
		}
		records = append(records, r)
	}
	return records, nil
}

func (c *Client) Count(ctx context.Context) (int, error) {
	id, err := c.ensureCollection(ctx)
	if err != nil {
		return 0, err
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/count", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: chroma GET %s: %s", vectorstore.ErrUnavailable, url, resp.Status)
	}
	var count int
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: chroma POST %s: %s", vectorstore.ErrUnavailable, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
