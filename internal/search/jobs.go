// Package search keeps an Elasticsearch index of job postings and answers
// full-text queries with job ids.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/job_board/internal/models"
)

type JobIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewJobIndex(es *elasticsearch.Client, index string) *JobIndex {
	if index == "" {
		index = "jobs"
	}
	return &JobIndex{es: es, index: index}
}

type jobDoc struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType"`
	Remote         bool      `json:"remote"`
	Status         string    `json:"status"`
	CompanyID      string    `json:"companyId"`
	CompanyName    string    `json:"companyName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func docFromJob(j *models.Job) jobDoc {
	d := jobDoc{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Remote:         j.Remote,
		Status:         j.Status,
		CompanyID:      j.CompanyID,
		CreatedAt:      j.CreatedAt,
	}
	if j.Company != nil {
		d.CompanyName = j.Company.Name
	}
	return d
}

func (ix *JobIndex) IndexJob(ctx context.Context, j *models.Job) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(docFromJob(j)); err != nil {
		return fmt.Errorf("search: encode job: %w", err)
	}

	res, err := ix.es.Index(ix.index, &buf,
		ix.es.Index.WithContext(ctx),
		ix.es.Index.WithDocumentID(j.ID),
	)
	if err != nil {
		return fmt.Errorf("search: index job: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index job", res.Status(), res.Body)
	}
	return nil
}

func (ix *JobIndex) DeleteJob(ctx context.Context, id string) error {
	res, err := ix.es.Delete(ix.index, id, ix.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete job: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete job", res.Status(), res.Body)
	}
	return nil
}

// SearchJobs returns the total hit count and the ids of the requested page,
// best match first. Only open jobs are returned.
func (ix *JobIndex) SearchJobs(ctx context.Context, query string, from, size int) (int64, []string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(query, from, size)); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := ix.es.Search(
		ix.es.Search.WithContext(ctx),
		ix.es.Search.WithIndex(ix.index),
		ix.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("query", res.Status(), res.Body)
	}

	return decodeHits(res.Body)
}

func buildQuery(query string, from, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":     query,
							"fields":    []string{"title^2", "description", "location", "companyName"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"status": models.JobOpen}},
				},
			},
		},
		"from":    from,
		"size":    size,
		"_source": []string{"id"},
	}
}

func decodeHits(body io.Reader) (int64, []string, error) {
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
	if err := json.NewDecoder(body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	ids := make([]string, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		ids[i] = h.ID
	}
	return r.Hits.Total.Value, ids, nil
}

func responseError(op, status string, body io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("search: %s: %s: %s", op, status, bytes.TrimSpace(b))
}
