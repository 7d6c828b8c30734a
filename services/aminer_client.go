package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	aminerPersonSearchURL = "https://datacenter.aminer.cn/gateway/open_platform/api/person/search"
	aminerPersonDetailURL = "https://apiv2.aminer.cn/magic?a=getPerson__personapi.get___"
	aminerPaperSearchURL  = "https://apiv2.aminer.cn/n"
	aminerPatentSearchURL = "https://searchtest.aminer.cn/aminer-search/search/patentV2"

	// Provider limit on the person search endpoint.
	aminerSearchMaxSize = 10

	// The person search endpoint gets a fixed short deadline; the other
	// endpoints rely on the client timeout only.
	aminerSearchTimeout = 10 * time.Second
)

// personDetailSchema is the field list requested from the person detail API.
var personDetailSchema = []interface{}{
	"id", "name", "name_zh", "avatar", "num_view", "is_follow", "work", "work_zh",
	"hide", "nation", "language", "bind", "acm_citations", "links", "educations",
	"tags", "tags_zh", "num_view", "num_follow", "is_upvoted", "num_upvoted",
	"is_downvoted", "is_lock",
	map[string]interface{}{
		"indices": []string{
			"hindex", "gindex", "pubs", "citations", "newStar", "risingStar",
			"activity", "diversity", "sociability",
		},
	},
	map[string]interface{}{
		"profile": []string{
			"position", "position_zh", "affiliation", "affiliation_zh", "work",
			"work_zh", "gender", "lang", "homepage", "phone", "email", "fax", "bio",
			"bio_zh", "edu", "edu_zh", "address", "note", "homepage", "title", "titles",
		},
	},
}

// ScholarProducts is the uniform envelope returned by the paper and patent
// search endpoints.
type ScholarProducts struct {
	HitList   []map[string]interface{} `json:"hitList"`
	HitsTotal int                      `json:"hitsTotal"`
}

// ScholarDetail is a provider person-detail record normalized into the shape
// accepted by scholar create, so the payload can be re-submitted directly.
type ScholarDetail struct {
	AminerID    string      `json:"aminer_id"`
	Name        string      `json:"name"`
	NameZh      string      `json:"name_zh"`
	Avatar      string      `json:"avatar"`
	Nation      string      `json:"nation"`
	Indices     interface{} `json:"indices,omitempty"`
	Links       interface{} `json:"links,omitempty"`
	Profile     interface{} `json:"profile,omitempty"`
	Tags        interface{} `json:"tags,omitempty"`
	TagsScore   interface{} `json:"tags_score,omitempty"`
	TagsZh      interface{} `json:"tags_zh,omitempty"`
	NumFollowed int         `json:"num_followed"`
	NumUpvoted  int         `json:"num_upvoted"`
	NumViewed   int         `json:"num_viewed"`
	Gender      string      `json:"gender"`
	Homepage    string      `json:"homepage"`
	Position    string      `json:"position"`
	PositionZh  string      `json:"position_zh"`
}

// AminerClient wraps the AMiner search endpoints. Every call is a single
// synchronous round trip; any deviation from the documented envelope is a
// hard ErrUpstream failure rather than a best-effort parse.
type AminerClient struct {
	client *http.Client
	token  string

	// Endpoint URLs, overridable in tests.
	PersonSearchURL string
	PersonDetailURL string
	PaperSearchURL  string
	PatentSearchURL string
}

// NewAminerClient constructs an AminerClient. The API token is read from the
// AMINER_TOKEN environment variable.
func NewAminerClient(client *http.Client) *AminerClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &AminerClient{
		client:          client,
		token:           os.Getenv("AMINER_TOKEN"),
		PersonSearchURL: aminerPersonSearchURL,
		PersonDetailURL: aminerPersonDetailURL,
		PaperSearchURL:  aminerPaperSearchURL,
		PatentSearchURL: aminerPatentSearchURL,
	}
}

// SearchScholars queries scholars by name and optional organization. The
// provider's "no match" answer (code != 200 or success=false) maps to an
// empty list, not an error. Size is clamped to the provider's 1-10 window.
func (a *AminerClient) SearchScholars(ctx context.Context, name, org string, size, offset int) ([]map[string]interface{}, error) {
	if name == "" {
		return nil, newValidationError("name", "must not be empty")
	}
	if size < 1 {
		size = 1
	}
	if size > aminerSearchMaxSize {
		size = aminerSearchMaxSize
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, aminerSearchTimeout)
	defer cancel()

	payload := map[string]interface{}{
		"name":   name,
		"offset": offset,
		"org":    org,
		"size":   size,
	}

	headers := map[string]string{
		"Content-Type":  "application/json;charset=utf-8",
		"Authorization": a.token,
	}

	body, err := a.post(ctx, a.PersonSearchURL, headers, payload)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Code    int                      `json:"code"`
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode person search response: %v", ErrUpstream, err)
	}

	if decoded.Code != 200 || !decoded.Success {
		return []map[string]interface{}{}, nil
	}
	if decoded.Data == nil {
		return []map[string]interface{}{}, nil
	}
	return decoded.Data, nil
}

// GetScholarDetail fetches the full person record for an AMiner person id.
// An empty payload from the provider maps to ErrNotFound.
func (a *AminerClient) GetScholarDetail(ctx context.Context, personID string) (map[string]interface{}, error) {
	if personID == "" {
		return nil, newValidationError("person_id", "must not be empty")
	}

	payload := []map[string]interface{}{
		{
			"action": "personapi.get",
			"parameters": map[string]interface{}{
				"ids": []string{personID},
			},
			"schema": map[string]interface{}{
				"person": personDetailSchema,
			},
		},
	}

	body, err := a.post(ctx, a.PersonDetailURL, jsonHeaders(), payload)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Data []struct {
			Data []map[string]interface{} `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode person detail response: %v", ErrUpstream, err)
	}
	if len(decoded.Data) == 0 {
		return nil, fmt.Errorf("%w: person detail envelope missing data", ErrUpstream)
	}
	if len(decoded.Data[0].Data) == 0 {
		return nil, fmt.Errorf("scholar %s: %w", personID, ErrNotFound)
	}
	return decoded.Data[0].Data[0], nil
}

// SearchScholarPapers returns the papers authored by the given scholar,
// newest year first, in the uniform {hitList, hitsTotal} envelope.
func (a *AminerClient) SearchScholarPapers(ctx context.Context, personID string, size int, needDetails bool) (*ScholarProducts, error) {
	if personID == "" {
		return nil, newValidationError("person_id", "must not be empty")
	}
	if size < 1 {
		size = aminerSearchMaxSize
	}

	payload := []map[string]interface{}{
		{
			"action": "person.SearchPersonPaper",
			"parameters": map[string]interface{}{
				"person_id": personID,
				"search_param": map[string]interface{}{
					"needDetails": needDetails,
					"page":        0,
					"size":        size,
					"sort": []map[string]interface{}{
						{"field": "year", "asc": false},
					},
				},
			},
		},
	}

	body, err := a.post(ctx, a.PaperSearchURL, jsonHeaders(), payload)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Data []struct {
			Data struct {
				HitList   *[]map[string]interface{} `json:"hitList"`
				HitsTotal *int                      `json:"hitsTotal"`
			} `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode paper search response: %v", ErrUpstream, err)
	}
	if len(decoded.Data) == 0 {
		return nil, fmt.Errorf("%w: paper search envelope missing data", ErrUpstream)
	}

	inner := decoded.Data[0].Data
	if inner.HitList == nil || inner.HitsTotal == nil {
		return nil, fmt.Errorf("%w: paper search envelope missing hitList/hitsTotal", ErrUpstream)
	}
	return &ScholarProducts{HitList: *inner.HitList, HitsTotal: *inner.HitsTotal}, nil
}

// SearchScholarPatents returns the patents naming the scholar as inventor,
// sorted by publication date descending. Country, classification, and free
// text filters are provider-side.
func (a *AminerClient) SearchScholarPatents(ctx context.Context, personID string, size, page int, query string) (*ScholarProducts, error) {
	if personID == "" {
		return nil, newValidationError("person_id", "must not be empty")
	}
	if size < 1 {
		size = aminerSearchMaxSize
	}
	if page < 0 {
		page = 0
	}

	payload := map[string]interface{}{
		"filters": []map[string]interface{}{
			{
				"boolOperator": 3,
				"field":        "inventor.person_id",
				"type":         "term",
				"value":        personID,
			},
		},
		"sort": []map[string]interface{}{
			{"field": "pub_date", "asc": false},
		},
		"needDetails": true,
		"query":       query,
		"page":        page,
		"size":        size,
	}

	body, err := a.post(ctx, a.PatentSearchURL, jsonHeaders(), payload)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Code    int  `json:"code"`
		Success bool `json:"success"`
		Data    *struct {
			HitList   *[]map[string]interface{} `json:"hitList"`
			HitsTotal *int                      `json:"hitsTotal"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode patent search response: %v", ErrUpstream, err)
	}
	if decoded.Code != 200 || !decoded.Success || decoded.Data == nil ||
		decoded.Data.HitList == nil || decoded.Data.HitsTotal == nil {
		return nil, fmt.Errorf("%w: patent search envelope malformed", ErrUpstream)
	}
	return &ScholarProducts{HitList: *decoded.Data.HitList, HitsTotal: *decoded.Data.HitsTotal}, nil
}

// NormalizeScholarDetail flattens a raw person record into the scholar-create
// shape. Position and gender fall back to the nested profile block when they
// are not present at the top level.
func NormalizeScholarDetail(person map[string]interface{}) *ScholarDetail {
	detail := &ScholarDetail{
		AminerID:    stringField(person, "id"),
		Name:        stringField(person, "name"),
		NameZh:      stringField(person, "name_zh"),
		Avatar:      stringField(person, "avatar"),
		Nation:      stringField(person, "nation"),
		Indices:     person["indices"],
		Links:       person["links"],
		Profile:     person["profile"],
		Tags:        person["tags"],
		TagsScore:   person["tags_score"],
		TagsZh:      person["tags_zh"],
		NumFollowed: intField(person, "num_followed"),
		NumUpvoted:  intField(person, "num_upvoted"),
		NumViewed:   intField(person, "num_viewed"),
		Gender:      stringField(person, "gender"),
		Homepage:    stringField(person, "homepage"),
		Position:    stringField(person, "position"),
		PositionZh:  stringField(person, "position_zh"),
	}

	if detail.NumFollowed == 0 {
		detail.NumFollowed = intField(person, "num_follow")
	}
	if detail.NumViewed == 0 {
		detail.NumViewed = intField(person, "num_view")
	}

	if profile, ok := person["profile"].(map[string]interface{}); ok {
		if detail.Gender == "" {
			detail.Gender = stringField(profile, "gender")
		}
		if detail.Homepage == "" {
			detail.Homepage = stringField(profile, "homepage")
		}
		if detail.Position == "" {
			detail.Position = stringField(profile, "position")
		}
		if detail.PositionZh == "" {
			detail.PositionZh = stringField(profile, "position_zh")
		}
	}

	return detail
}

// post issues one JSON request and returns the response body. Non-2xx
// statuses become ErrUpstream with a body snippet for context.
func (a *AminerClient) post(ctx context.Context, url string, headers map[string]string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d body %s", ErrUpstream, resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}
	return body, nil
}

func jsonHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json, text/plain, */*",
		"Content-Type": "application/json",
		"Origin":       "https://www.aminer.cn",
		"Referer":      "https://www.aminer.cn/",
	}
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
