package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCheckout(t *testing.T) {
	var gotAuth string
	var gotReq CheckoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/checkouts" {
			t.Errorf("path = %q, want /checkouts", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, `{"id":"chk_1","checkout_url":"https://pay.example.com/c/chk_1"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	out, err := client.CreateCheckout(context.Background(), CheckoutRequest{
		Amount:      47,
		Description: "Top Tier Monthly",
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReq.Currency != "EUR" {
		t.Errorf("currency = %q, want default EUR", gotReq.Currency)
	}
	if out.CheckoutURL != "https://pay.example.com/c/chk_1" {
		t.Errorf("checkout url = %q", out.CheckoutURL)
	}
}

func TestCreateCheckoutErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"bad key"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong")
	if _, err := client.CreateCheckout(context.Background(), CheckoutRequest{Amount: 1}); err == nil {
		t.Fatal("expected an error on 401")
	}
}
