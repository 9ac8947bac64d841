package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase    string
	token      string
	profileID  string
	client     = &http.Client{Timeout: 30 * time.Second}
	mealDay    string
	mealID     string
	createdIDs = make(map[string]string) // track created resources across steps
)

func main() {
	fmt.Println("=== Meal Hub E2E Smoke Test ===")
	fmt.Println()

	// Load config from env
	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")
	profileID = getEnv("SMOKE_PROFILE_ID", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Printf("Profile ID: %s\n", maskString(profileID))
	fmt.Println()

	// Run smoke tests
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Get Profile ID", testGetProfileID},
		{"Get Meal Pattern", testGetMealPattern},
		{"Start Calibration", testStartCalibration},
		{"Get Calibration", testGetCalibration},
		{"Update Meal Content", testUpdateMealContent},
		{"Provisional Estimate", testProvisionalEstimate},
		{"Assisted Estimate", testAssistedEstimate},
		{"Create Advisor Addition", testCreateAddition},
		{"Approve Advisor Addition", testApproveAddition},
		{"Undo Advisor Addition", testUndoAddition},
		{"Download Week Report", testDownloadReport},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := doGet("/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testGetProfileID() error {
	// If profile ID already set via env, skip
	if profileID != "" {
		return nil
	}

	resp, err := doGet("/v1/profiles")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Profiles []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"profiles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if len(result.Profiles) == 0 {
		return fmt.Errorf("no profiles found")
	}

	// Prefer the owner profile
	for _, p := range result.Profiles {
		if p.Type == "owner" {
			profileID = p.ID
			return nil
		}
	}

	profileID = result.Profiles[0].ID
	return nil
}

func testGetMealPattern() error {
	resp, err := doGet("/v1/meal-pattern?profile_id=" + profileID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testStartCalibration() error {
	resp, err := doPost("/v1/calibration/start", map[string]interface{}{
		"profile_id": profileID,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testGetCalibration() error {
	resp, err := doGet("/v1/calibration?profile_id=" + profileID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Days []struct {
			Day    string `json:"day"`
			Status string `json:"status"`
			Meals  []struct {
				ID string `json:"id"`
			} `json:"meals"`
		} `json:"days"`
		CurrentDay *string `json:"current_day"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if len(result.Days) != 5 {
		return fmt.Errorf("expected 5 days, got %d", len(result.Days))
	}

	// Pick a day we can write to: today if open, otherwise the first day
	mealDay = result.Days[0].Day
	mealID = ""
	for _, d := range result.Days {
		if d.Status == "open_today" && len(d.Meals) > 0 {
			mealDay = d.Day
			mealID = d.Meals[0].ID
			break
		}
	}
	if mealID == "" && len(result.Days[0].Meals) > 0 {
		mealID = result.Days[0].Meals[0].ID
	}
	if mealID == "" {
		return fmt.Errorf("no meals pre-populated from pattern")
	}

	return nil
}

func testUpdateMealContent() error {
	url := fmt.Sprintf("/v1/calibration/days/%s/meals/%s", mealDay, mealID)
	resp, err := doJSON("PATCH", url, map[string]interface{}{
		"profile_id": profileID,
		"content":    "200 g rice and chicken breast",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testProvisionalEstimate() error {
	resp, err := doPost("/v1/estimates/provisional", map[string]interface{}{
		"text":     "200 g rice and chicken breast",
		"revision": 1,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		IsAI     bool `json:"is_ai"`
		Estimate struct {
			TotalCalories int `json:"total_calories"`
		} `json:"estimate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.IsAI {
		return fmt.Errorf("provisional estimate flagged as AI")
	}

	return nil
}

func testAssistedEstimate() error {
	resp, err := doPost("/v1/estimates", map[string]interface{}{
		"text":     "200 g rice and chicken breast",
		"revision": 2,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testCreateAddition() error {
	resp, err := doPost("/v1/advisor/additions", map[string]interface{}{
		"profile_id": profileID,
		"kind":       "nutrition",
		"day":        mealDay,
		"meal_id":    mealID,
		"content":    "200 g rice and chicken breast, plus a glass of kefir",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	createdIDs["addition"] = result.ID
	return nil
}

func testApproveAddition() error {
	additionID := createdIDs["addition"]
	if additionID == "" {
		return fmt.Errorf("no addition ID to approve")
	}

	resp, err := doPost("/v1/advisor/additions/"+additionID+"/approve", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testUndoAddition() error {
	additionID := createdIDs["addition"]
	if additionID == "" {
		return fmt.Errorf("no addition ID to undo")
	}

	resp, err := doPost("/v1/advisor/additions/"+additionID+"/undo", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

func testDownloadReport() error {
	resp, err := doGet("/v1/calibration/report?profile_id=" + profileID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8))
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return fmt.Errorf("response is not a PDF")
	}

	return nil
}

// Helper functions

func doGet(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", apiBase+path, nil)
	if err != nil {
		return nil, err
	}
	addAuth(req)
	return client.Do(req)
}

func doPost(path string, payload interface{}) (*http.Response, error) {
	return doJSON("POST", path, payload)
}

func doJSON(method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req)
	return client.Do(req)
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
