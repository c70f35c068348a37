package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeGraph records every call to the platform and lets a test fail a
// chosen endpoint.
type fakeGraph struct {
	mu       sync.Mutex
	paths    []string
	payloads map[string][]map[string]interface{}
	failPath string
	nextID   int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{payloads: make(map[string][]map[string]interface{})}
}

func (f *fakeGraph) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.paths = append(f.paths, r.URL.Path)

		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.payloads[r.URL.Path] = append(f.payloads[r.URL.Path], payload)

		if f.failPath != "" && r.URL.Path == f.failPath {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"invalid targeting"}}`)
			return
		}
		f.nextID++
		fmt.Fprintf(w, `{"id":"obj_%d"}`, f.nextID)
	}
}

func (f *fakeGraph) calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.paths {
		if p == path {
			n++
		}
	}
	return n
}

func (f *fakeGraph) lastPayload(path string) map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.payloads[path]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

func newTestClient(baseURL string) *Client {
	c := NewClient("token", "act_1", "page_9")
	c.BaseURL = baseURL
	c.InterAdSetDelay = 0 // no pauses in tests
	return c
}

func linkAdSet(name string) AdSetSpec {
	return AdSetSpec{
		Name:        name,
		DailyBudget: 25,
		Targeting:   TargetingSpec{AgeMin: 18, AgeMax: 45, Countries: []string{"NL"}},
		Creative: CreativeSpec{
			Title:   "Join the brotherhood",
			Body:    "Become the man you are meant to be.",
			LinkURL: "https://toptiermen.eu",
		},
	}
}

func TestCreateCampaignHappyPath(t *testing.T) {
	graph := newFakeGraph()
	srv := httptest.NewServer(graph.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	spec := CampaignSpec{
		Name:        "Launch",
		Objective:   "OUTCOME_TRAFFIC",
		DailyBudget: 47.5,
		AdSets:      []AdSetSpec{linkAdSet("Set A"), linkAdSet("Set B")},
	}

	result, err := client.CreateCampaign(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	if result.CampaignID == "" {
		t.Error("missing campaign id")
	}
	if len(result.AdSets) != 2 {
		t.Fatalf("got %d ad set results, want 2", len(result.AdSets))
	}
	for i, as := range result.AdSets {
		if as.AdSetID == "" || as.CreativeID == "" || as.AdID == "" {
			t.Errorf("ad set %d incomplete: %+v", i, as)
		}
	}

	// Budgets go over the wire in minor units.
	if got := graph.lastPayload("/act_1/campaigns")["daily_budget"]; got != float64(4750) {
		t.Errorf("campaign daily_budget = %v, want 4750", got)
	}
	if got := graph.lastPayload("/act_1/adsets")["daily_budget"]; got != float64(2500) {
		t.Errorf("ad set daily_budget = %v, want 2500", got)
	}
	if got := graph.lastPayload("/act_1/adsets")["optimization_goal"]; got != "LANDING_PAGE_VIEWS" {
		t.Errorf("optimization_goal = %v, want LANDING_PAGE_VIEWS", got)
	}
}

func TestCreateCampaignFailsFast(t *testing.T) {
	graph := newFakeGraph()
	graph.failPath = "/act_1/adsets"
	srv := httptest.NewServer(graph.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	spec := CampaignSpec{
		Name:      "Launch",
		Objective: "OUTCOME_TRAFFIC",
		AdSets:    []AdSetSpec{linkAdSet("Set A"), linkAdSet("Set B")},
	}

	result, err := client.CreateCampaign(context.Background(), spec)
	if err == nil {
		t.Fatal("expected an error from the failing ad set call")
	}
	// The campaign was created before the failure and must be reported.
	if result.CampaignID == "" {
		t.Error("partial result missing campaign id")
	}
	// Nothing downstream of the failing call runs: one ad set attempt,
	// no creatives, no ads, no second ad set.
	if n := graph.calls("/act_1/adsets"); n != 1 {
		t.Errorf("ad set calls = %d, want 1", n)
	}
	if n := graph.calls("/act_1/adcreatives"); n != 0 {
		t.Errorf("creative calls = %d, want 0", n)
	}
	if n := graph.calls("/act_1/ads"); n != 0 {
		t.Errorf("ad calls = %d, want 0", n)
	}
}

func TestCreateCampaignCreativeFailureKeepsAdSetID(t *testing.T) {
	graph := newFakeGraph()
	graph.failPath = "/act_1/adcreatives"
	srv := httptest.NewServer(graph.handler())
	defer srv.Close()

	client := newTestClient(srv.URL)
	spec := CampaignSpec{
		Name:      "Launch",
		Objective: "OUTCOME_LEADS",
		AdSets:    []AdSetSpec{linkAdSet("Set A")},
	}

	result, err := client.CreateCampaign(context.Background(), spec)
	if err == nil {
		t.Fatal("expected an error from the failing creative call")
	}
	if len(result.AdSets) != 1 || result.AdSets[0].AdSetID == "" {
		t.Fatalf("partial result = %+v, want the created ad set id", result.AdSets)
	}
	if result.AdSets[0].CreativeID != "" {
		t.Error("creative id present although the call failed")
	}
}

func TestOptimizationGoalFor(t *testing.T) {
	cases := []struct {
		objective string
		want      string
	}{
		{"OUTCOME_TRAFFIC", "LANDING_PAGE_VIEWS"},
		{"OUTCOME_LEADS", "LEAD_GENERATION"},
		{"OUTCOME_ENGAGEMENT", "POST_ENGAGEMENT"},
		{"OUTCOME_AWARENESS", "REACH"},
		{"OUTCOME_SALES", "OFFSITE_CONVERSIONS"},
		{"SOMETHING_ELSE", "LINK_CLICKS"},
		{"", "LINK_CLICKS"},
	}
	for _, tc := range cases {
		if got := OptimizationGoalFor(tc.objective); got != tc.want {
			t.Errorf("OptimizationGoalFor(%q) = %q, want %q", tc.objective, got, tc.want)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		major float64
		want  int
	}{
		{47, 4700},
		{47.5, 4750},
		// 19.99*100 is 1998.999... in float64; truncation would lose a cent.
		{19.99, 1999},
		{9.95, 995},
		{0, 0},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.major); got != tc.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.major, got, tc.want)
		}
	}
}

func TestGetCampaignInsights(t *testing.T) {
	var gotPreset string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPreset = r.URL.Query().Get("date_preset")
		fmt.Fprint(w, `{"data":[{"impressions":"1000","clicks":"50","spend":"12.34","ctr":"5.0","cpc":"0.25","reach":"800"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ins, err := client.GetCampaignInsights(context.Background(), "cmp_1", "")
	if err != nil {
		t.Fatal(err)
	}
	if gotPreset != "lifetime" {
		t.Errorf("date_preset = %q, want default lifetime", gotPreset)
	}
	if ins.Impressions != "1000" || ins.Clicks != "50" {
		t.Errorf("insights = %+v", ins)
	}
}
