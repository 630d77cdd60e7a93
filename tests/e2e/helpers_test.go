package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// BASE_URL未設定ならスキップ（サーバーが起動している前提のテスト）
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; start the API and set BASE_URL to run e2e tests")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *TestClient) doJSON(ctx context.Context, t *testing.T, method string, path string, token string, body []byte) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out
}

// 商品系のmultipartリクエスト。imagesはファイル名→中身
func (c *TestClient) doMultipart(ctx context.Context, t *testing.T, path string, fields map[string]string, images map[string][]byte) (*http.Response, []byte) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for name, content := range images {
		fw, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()

	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d body=%s", want, resp.StatusCode, string(body))
	}
}

// =====================
// envelope DTO
// =====================

type Product struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Price  float64        `json:"price"`
	Images []ProductImage `json:"images"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	ImagePath string `json:"image_path"`
}

type CartItem struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"user_id"`
	ProductID int64    `json:"product_id"`
	Quantity  int64    `json:"quantity"`
	Product   *Product `json:"product"`
}

type ProductEnvelope struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Product Product `json:"product"`
}

type ProductListEnvelope struct {
	Status   string    `json:"status"`
	Products []Product `json:"products"`
}

type CartItemEnvelope struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	CartItem CartItem `json:"cart_item"`
}

type CartListEnvelope struct {
	Status    string     `json:"status"`
	CartItems []CartItem `json:"cart_items"`
}

type ErrorEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type TokenEnvelope struct {
	Status string `json:"status"`
	Token  struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"token"`
}

func mustDecode(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
}

// 会員登録してログインし、アクセストークンを返す
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	creds, err := json.Marshal(map[string]string{
		"email":    email,
		"password": "password123",
	})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", creds)
	requireStatus(t, resp, http.StatusCreated, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", creds)
	requireStatus(t, resp, http.StatusOK, body)

	var tok TokenEnvelope
	mustDecode(t, body, &tok)
	if tok.Token.AccessToken == "" {
		t.Fatalf("no access token in login response: %s", string(body))
	}
	return tok.Token.AccessToken
}

// テスト用の商品を1つ作ってIDを返す
func createProduct(t *testing.T, c *TestClient, ctx context.Context, name string, price string) int64 {
	t.Helper()

	resp, body := c.doMultipart(ctx, t, "/products",
		map[string]string{"name": name, "price": price},
		map[string][]byte{"a.jpg": []byte("fake jpeg bytes")},
	)
	requireStatus(t, resp, http.StatusCreated, body)

	var env ProductEnvelope
	mustDecode(t, body, &env)
	if env.Product.ID == 0 {
		t.Fatalf("created product has no id: %s", string(body))
	}
	return env.Product.ID
}
