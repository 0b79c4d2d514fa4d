package moviedata

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

/*

CatalogClient is a thin typed client over the upstream movie catalog API.
The catalog serves paginated JSON of the shape below; the importer walks
pages until the API reports no more.

*/

type CatalogMovie struct {
	ExternalID  string   `json:"id"`
	Title       string   `json:"title"`
	Director    string   `json:"director"`
	ReleaseDate string   `json:"release_date"`
	Synopsis    string   `json:"synopsis"`
	Genres      []string `json:"genres"`
	Platforms   []string `json:"platforms"`
}

type catalogPage struct {
	Results []CatalogMovie `json:"results"`
	Page    int            `json:"page"`
	Pages   int            `json:"total_pages"`
}

type CatalogClient struct {
	baseUrl string
	client  *resty.Client
}

func NewCatalogClient(baseUrl string, apiKey string) *CatalogClient {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(3 * time.Second)
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &CatalogClient{baseUrl: baseUrl, client: client}
}

// FetchPage fetches one page of catalog results, 1-based.
func (c *CatalogClient) FetchPage(page int) ([]CatalogMovie, bool, error) {
	var body catalogPage
	resp, err := c.client.R().
		SetQueryParam("page", fmt.Sprint(page)).
		SetResult(&body).
		Get(c.baseUrl + "/movies")
	if err != nil {
		return nil, false, errors.Wrap(err, "fail to fetch catalog page")
	}
	if resp.StatusCode() != 200 {
		return nil, false, fmt.Errorf("catalog returned status %d", resp.StatusCode())
	}
	return body.Results, page < body.Pages, nil
}
