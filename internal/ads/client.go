// Package ads materializes campaigns on the external ads platform's
// Graph API.  The orchestration runs a fixed sequence per ad set
// (upload video, create ad set, create creative, create ad) with a
// constant pause between successive ad sets to stay under the
// platform's rate limits.  Any non-OK response aborts the whole run
// immediately; objects created before the failure are left in place.
package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const DefaultBaseURL = "https://graph.facebook.com/v19.0"

// Client calls the ads platform with bearer-token auth.  The zero
// value is not usable; construct with NewClient.
type Client struct {
	BaseURL         string
	AccessToken     string
	AdAccountID     string
	PageID          string
	HTTPClient      *http.Client
	InterAdSetDelay time.Duration
}

func NewClient(accessToken, adAccountID, pageID string) *Client {
	return &Client{
		BaseURL:         DefaultBaseURL,
		AccessToken:     accessToken,
		AdAccountID:     adAccountID,
		PageID:          pageID,
		HTTPClient:      &http.Client{Timeout: 60 * time.Second},
		InterAdSetDelay: 2 * time.Second,
	}
}

// APIError wraps a non-OK platform response with its raw body so the
// platform's own error detail reaches the operator unchanged.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ads api: status %d: %s", e.Status, e.Body)
}

type idResponse struct {
	ID string `json:"id"`
}

// post sends a JSON body to path and decodes the id-bearing response.
func (c *Client) post(ctx context.Context, path string, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+path+"?access_token="+url.QueryEscape(c.AccessToken), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	var out idResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("ads api: decode response: %w", err)
	}
	return out.ID, nil
}

// CreateCampaign runs the full orchestration: campaign, then each ad
// set in order (video upload, ad set, creative, ad).  The partial
// result is always returned; on error it holds every id created
// before the failing call.
func (c *Client) CreateCampaign(ctx context.Context, spec CampaignSpec) (CampaignResult, error) {
	var result CampaignResult

	campaignID, err := c.createCampaignObject(ctx, spec)
	if err != nil {
		return result, fmt.Errorf("create campaign: %w", err)
	}
	result.CampaignID = campaignID

	for i, as := range spec.AdSets {
		if i > 0 && c.InterAdSetDelay > 0 {
			// Constant pause, not adaptive backoff: the platform
			// throttles bursts of ad-set creation calls.
			select {
			case <-time.After(c.InterAdSetDelay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}

		var setResult AdSetResult

		if as.Creative.VideoPath != "" {
			videoID, err := c.UploadVideo(ctx, as.Creative.VideoPath)
			if err != nil {
				return result, fmt.Errorf("ad set %q: upload video: %w", as.Name, err)
			}
			setResult.VideoID = videoID
		}

		adSetID, err := c.createAdSet(ctx, campaignID, spec.Objective, as)
		if err != nil {
			return result, fmt.Errorf("ad set %q: %w", as.Name, err)
		}
		setResult.AdSetID = adSetID

		creativeID, err := c.createCreative(ctx, as.Creative, setResult.VideoID)
		if err != nil {
			result.AdSets = append(result.AdSets, setResult)
			return result, fmt.Errorf("ad set %q: create creative: %w", as.Name, err)
		}
		setResult.CreativeID = creativeID

		adID, err := c.createAd(ctx, as.Name, adSetID, creativeID)
		if err != nil {
			result.AdSets = append(result.AdSets, setResult)
			return result, fmt.Errorf("ad set %q: create ad: %w", as.Name, err)
		}
		setResult.AdID = adID

		result.AdSets = append(result.AdSets, setResult)
	}
	return result, nil
}

func (c *Client) createCampaignObject(ctx context.Context, spec CampaignSpec) (string, error) {
	status := spec.Status
	if status == "" {
		status = "PAUSED"
	}
	categories := spec.SpecialAdCategories
	if categories == nil {
		categories = []string{}
	}
	return c.post(ctx, "/"+c.AdAccountID+"/campaigns", map[string]interface{}{
		"name":                  spec.Name,
		"objective":             spec.Objective,
		"status":                status,
		"special_ad_categories": categories,
		"daily_budget":          MinorUnits(spec.DailyBudget),
	})
}

func (c *Client) createAdSet(ctx context.Context, campaignID, objective string, as AdSetSpec) (string, error) {
	targeting := map[string]interface{}{
		"age_min": as.Targeting.AgeMin,
		"age_max": as.Targeting.AgeMax,
	}
	if len(as.Targeting.Genders) > 0 {
		targeting["genders"] = as.Targeting.Genders
	}
	if len(as.Targeting.Countries) > 0 {
		targeting["geo_locations"] = map[string]interface{}{"countries": as.Targeting.Countries}
	}
	if len(as.Targeting.InterestIDs) > 0 {
		targeting["interests"] = idObjects(as.Targeting.InterestIDs)
	}
	if len(as.Targeting.BehaviorIDs) > 0 {
		targeting["behaviors"] = idObjects(as.Targeting.BehaviorIDs)
	}
	if len(as.Targeting.ExcludedInterestIDs) > 0 {
		targeting["exclusions"] = map[string]interface{}{"interests": idObjects(as.Targeting.ExcludedInterestIDs)}
	}

	payload := map[string]interface{}{
		"name":              as.Name,
		"campaign_id":       campaignID,
		"daily_budget":      MinorUnits(as.DailyBudget),
		"billing_event":     "IMPRESSIONS",
		"optimization_goal": OptimizationGoalFor(objective),
		"targeting":         targeting,
		"status":            "PAUSED",
	}
	if as.BidAmount > 0 {
		payload["bid_amount"] = as.BidAmount
	}
	return c.post(ctx, "/"+c.AdAccountID+"/adsets", payload)
}

func idObjects(ids []string) []map[string]string {
	out := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]string{"id": id})
	}
	return out
}

func (c *Client) createCreative(ctx context.Context, cr CreativeSpec, videoID string) (string, error) {
	story := map[string]interface{}{"page_id": c.PageID}
	if videoID != "" {
		story["video_data"] = map[string]interface{}{
			"video_id": videoID,
			"title":    cr.Title,
			"message":  cr.Body,
			"call_to_action": map[string]interface{}{
				"type":  cr.CallToAction,
				"value": map[string]string{"link": cr.LinkURL},
			},
		}
	} else {
		link := map[string]interface{}{
			"link":    cr.LinkURL,
			"name":    cr.Title,
			"message": cr.Body,
		}
		if cr.ImageURL != "" {
			link["picture"] = cr.ImageURL
		}
		story["link_data"] = link
	}
	return c.post(ctx, "/"+c.AdAccountID+"/adcreatives", map[string]interface{}{
		"name":              cr.Title,
		"object_story_spec": story,
	})
}

func (c *Client) createAd(ctx context.Context, name, adSetID, creativeID string) (string, error) {
	return c.post(ctx, "/"+c.AdAccountID+"/ads", map[string]interface{}{
		"name":     name,
		"adset_id": adSetID,
		"creative": map[string]string{"creative_id": creativeID},
		"status":   "PAUSED",
	})
}

// UploadVideo posts a video file as multipart form data and returns
// the platform's video id.
func (c *Client) UploadVideo(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("source", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/"+c.AdAccountID+"/advideos?access_token="+url.QueryEscape(c.AccessToken), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	var out idResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("ads api: decode upload response: %w", err)
	}
	return out.ID, nil
}

// GetCampaignInsights reads the campaign-level report for a date
// preset such as "last_7d" or "lifetime".
func (c *Client) GetCampaignInsights(ctx context.Context, campaignID, datePreset string) (Insights, error) {
	if datePreset == "" {
		datePreset = "lifetime"
	}
	q := url.Values{}
	q.Set("access_token", c.AccessToken)
	q.Set("date_preset", datePreset)
	q.Set("fields", "impressions,clicks,spend,ctr,cpc,reach")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/"+campaignID+"/insights?"+q.Encode(), nil)
	if err != nil {
		return Insights{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Insights{}, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Insights{}, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	var out struct {
		Data []Insights `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Insights{}, fmt.Errorf("ads api: decode insights: %w", err)
	}
	if len(out.Data) == 0 {
		return Insights{}, nil
	}
	return out.Data[0], nil
}
