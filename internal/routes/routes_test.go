package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/config"
	"github.com/comply-core/comply_core/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := logging.Discard()
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler(logger)})
	cfg := config.Config{
		AppEnv:        "test",
		JWTSecret:     "test-secret",
		TokenLifetime: time.Hour,
		BcryptCost:    4,
		UploadDir:     t.TempDir(),
		MaxFileSize:   1 << 20,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logger}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s %s: decode body %q: %v", method, path, raw, err)
		}
	}
	return resp, decoded
}

func register(t *testing.T, app *fiber.App, email, password, name string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register?return_token=true", "", fiber.Map{
		"email":     email,
		"password":  password,
		"full_name": name,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: got %d, body %v", email, resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("register %s: no access_token in body %v", email, body)
	}
	return token
}

func TestRegisterLoginFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register?return_token=true", "", fiber.Map{
		"email":     "alice@example.com",
		"password":  "Secret123!",
		"full_name": "Alice Liddell",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: got %d, body %v", resp.StatusCode, body)
	}
	userBody, _ := body["user"].(map[string]any)
	if userBody["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload %v", body)
	}
	if _, leaked := userBody["password_hash"]; leaked {
		t.Fatalf("password hash exposed in response: %v", userBody)
	}
	var sawCookie bool
	for _, c := range resp.Cookies() {
		if c.Name != "auth_token" || c.Value == "" {
			continue
		}
		sawCookie = true
		if !c.HttpOnly {
			t.Errorf("auth cookie is not HttpOnly")
		}
		if c.Path != "/" {
			t.Errorf("auth cookie path = %q, want /", c.Path)
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("auth cookie SameSite = %v, want Lax", c.SameSite)
		}
		if c.MaxAge != 604800 {
			t.Errorf("auth cookie Max-Age = %d, want 604800", c.MaxAge)
		}
	}
	if !sawCookie {
		t.Fatalf("register did not set auth cookie")
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "Secret123!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: got %d", resp.StatusCode)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")

	respWrong, bodyWrong := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "not-the-password",
	})
	respUnknown, bodyUnknown := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "Secret123!",
	})

	if respWrong.StatusCode != http.StatusUnauthorized || respUnknown.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", respWrong.StatusCode, respUnknown.StatusCode)
	}
	if bodyWrong["error"] != bodyUnknown["error"] || bodyWrong["message"] != bodyUnknown["message"] {
		t.Fatalf("failure responses differ: %v vs %v", bodyWrong, bodyUnknown)
	}
	if bodyWrong["error"] != string(apperr.CategoryAuthentication) {
		t.Fatalf("unexpected category %v", bodyWrong["error"])
	}
}

func TestProtectedRoutesRequireCredential(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/compliance", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body["error"] != string(apperr.CategoryMissingCredential) {
		t.Fatalf("expected missing_credential, got %v", body["error"])
	}

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/v1/compliance", "not-a-real-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body["error"] != string(apperr.CategoryInvalidCredential) {
		t.Fatalf("expected invalid_credential, got %v", body["error"])
	}
}

func TestOwnerScopedCompliance(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")
	bob := register(t, app, "bob@example.com", "Hunter2abc", "Bob Ross")

	resp, created := doJSON(t, app, fiber.MethodPost, "/api/v1/compliance", alice, fiber.Map{
		"title":      "Annual SOC2 audit",
		"risk_level": "high",
		"status":     "pending",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: got %d, body %v", resp.StatusCode, created)
	}
	itemID, _ := created["id"].(string)
	if itemID == "" {
		t.Fatalf("no id in create response %v", created)
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/compliance/"+itemID, alice, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner get: got %d", resp.StatusCode)
	}

	// Foreign items are reported exactly like absent ones.
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/compliance/"+itemID, bob, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign get: expected 404, got %d", resp.StatusCode)
	}
	if body["error"] != string(apperr.CategoryNotFound) {
		t.Fatalf("expected not_found, got %v", body["error"])
	}

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/v1/compliance/"+itemID, bob, fiber.Map{
		"title": "Hijacked title",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign patch: expected 404, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/compliance", nil)
	req.Header.Set("Authorization", "Bearer "+bob)
	listResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("bob list: %v", err)
	}
	var bobItems []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&bobItems); err != nil {
		t.Fatalf("decode bob list: %v", err)
	}
	listResp.Body.Close()
	if len(bobItems) != 0 {
		t.Fatalf("bob sees %d foreign items", len(bobItems))
	}

	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/compliance", nil)
	req.Header.Set("Authorization", "Bearer "+alice)
	listResp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("alice list: %v", err)
	}
	var aliceItems []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&aliceItems); err != nil {
		t.Fatalf("decode alice list: %v", err)
	}
	listResp.Body.Close()
	if len(aliceItems) != 1 {
		t.Fatalf("alice expected 1 item, got %d", len(aliceItems))
	}
}

func TestCookieAuthenticatesProtectedRoutes(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("me via cookie: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var me map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me["email"] != "alice@example.com" {
		t.Fatalf("unexpected profile %v", me)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/logout", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: got %d", resp.StatusCode)
	}
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("logout did not clear the auth cookie: %v", resp.Cookies())
	}
}

func TestDashboardReflectsOwnedData(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")

	for i, level := range []string{"high", "low"} {
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/compliance", alice, fiber.Map{
			"title":      fmt.Sprintf("Obligation %d", i),
			"risk_level": level,
			"status":     "pending",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed item %d: got %d, body %v", i, resp.StatusCode, body)
		}
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", alice, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: got %d, body %v", resp.StatusCode, body)
	}
	stats, _ := body["compliance"].(map[string]any)
	if stats == nil {
		t.Fatalf("dashboard missing compliance stats: %v", body)
	}
	if got, _ := stats["total"].(float64); got != 2 {
		t.Fatalf("expected 2 items in stats, got %v", stats["total"])
	}
}

func TestTextDocumentAndItemScores(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")

	resp, doc := doJSON(t, app, fiber.MethodPost, "/api/v1/documents/text", alice, fiber.Map{
		"title":   "Retention policy",
		"content": "Customer data is retained for 90 days.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create text document: got %d, body %v", resp.StatusCode, doc)
	}
	if doc["extracted_text"] != "Customer data is retained for 90 days." {
		t.Fatalf("text document missing extracted text: %v", doc)
	}

	resp, item := doJSON(t, app, fiber.MethodPost, "/api/v1/compliance", alice, fiber.Map{
		"title":      "Retention obligation",
		"risk_level": "medium",
		"status":     "pending",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: got %d", resp.StatusCode)
	}
	itemID, _ := item["id"].(string)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/risk-scores", alice, fiber.Map{
		"compliance_item_id": itemID,
		"risk_category":      "privacy",
		"risk_score":         40,
		"risk_level":         "medium",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create score: got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/risk-scores/compliance/"+itemID, nil)
	req.Header.Set("Authorization", "Bearer "+alice)
	listResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("list scores by item: %v", err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("list scores by item: got %d", listResp.StatusCode)
	}
	var scores []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&scores); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if len(scores) != 1 || scores[0]["compliance_item_id"] != itemID {
		t.Fatalf("unexpected item scores: %v", scores)
	}
}

func TestAssessRiskWithoutProvider(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com", "Secret123!", "Alice Liddell")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/ai/assess-risk", alice, fiber.Map{
		"title": "Unencrypted backups",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 without a configured provider, got %d, body %v", resp.StatusCode, body)
	}
	if body["error"] != string(apperr.CategoryAIUnavailable) {
		t.Fatalf("expected ai_unavailable, got %v", body["error"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, fiber.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: got %d, body %v", resp.StatusCode, body)
	}
}
