package search

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/job_board/internal/models"
)

func TestBuildQuery(t *testing.T) {
	raw, err := json.Marshal(buildQuery("golang", 20, 10))
	require.NoError(t, err)

	var q struct {
		From  int `json:"from"`
		Size  int `json:"size"`
		Query struct {
			Bool struct {
				Must []struct {
					MultiMatch struct {
						Query     string   `json:"query"`
						Fields    []string `json:"fields"`
						Fuzziness string   `json:"fuzziness"`
					} `json:"multi_match"`
				} `json:"must"`
				Filter []struct {
					Term map[string]string `json:"term"`
				} `json:"filter"`
			} `json:"bool"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(raw, &q))

	assert.Equal(t, 20, q.From)
	assert.Equal(t, 10, q.Size)
	require.Len(t, q.Query.Bool.Must, 1)
	assert.Equal(t, "golang", q.Query.Bool.Must[0].MultiMatch.Query)
	assert.Contains(t, q.Query.Bool.Must[0].MultiMatch.Fields, "title^2")
	assert.Equal(t, "AUTO", q.Query.Bool.Must[0].MultiMatch.Fuzziness)
	require.Len(t, q.Query.Bool.Filter, 1)
	assert.Equal(t, models.JobOpen, q.Query.Bool.Filter[0].Term["status"])
}

func TestDecodeHits(t *testing.T) {
	body := `{"hits":{"total":{"value":42},"hits":[{"_id":"b"},{"_id":"a"}]}}`

	total, ids, err := decodeHits(strings.NewReader(body))
	require.NoError(t, err)
	assert.EqualValues(t, 42, total)
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestDocFromJob(t *testing.T) {
	j := &models.Job{Title: "Go", Status: models.JobOpen, Company: &models.Company{Name: "Acme"}}
	j.ID = "j1"

	d := docFromJob(j)
	assert.Equal(t, "j1", d.ID)
	assert.Equal(t, "Acme", d.CompanyName)
}
