package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
)

type submission struct {
	SubmissionID string `json:"submission_id"`
	Digest       string `json:"digest"`
	Error        string `json:"error"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "service base url")
	deviceID := flag.String("device", "", "existing device object id; create-device only when empty")
	flag.Parse()

	// 1. GET /api/v1/account
	resp, err := http.Get(*baseURL + "/api/v1/account")
	if err != nil {
		panic(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	fmt.Println("GET /api/v1/account:", resp.Status, string(body))

	// 2. POST /api/v1/devices
	res := call(http.MethodPost, *baseURL+"/api/v1/devices", map[string]any{
		"name":      "Honda Bike",
		"threshold": 1000,
	})
	fmt.Printf("create-device: digest=%s error=%s\n", res.Digest, res.Error)

	if *deviceID == "" {
		fmt.Println("No -device given, look up the created object id from the digest and rerun")
		return
	}

	// 3. PUT /api/v1/devices/{device_id}/threshold
	res = call(http.MethodPut, fmt.Sprintf("%s/api/v1/devices/%s/threshold", *baseURL, *deviceID), map[string]any{
		"threshold": 500,
	})
	fmt.Printf("update-threshold: digest=%s error=%s\n", res.Digest, res.Error)

	// 4. POST /api/v1/devices/{device_id}/gps-events
	res = call(http.MethodPost, fmt.Sprintf("%s/api/v1/devices/%s/gps-events", *baseURL, *deviceID), map[string]any{
		"latitude":  48.8566,
		"longitude": 2.3522,
	})
	fmt.Printf("gps-event: digest=%s error=%s\n", res.Digest, res.Error)
}

func call(method, url string, payload any) submission {
	data, _ := json.Marshal(payload)
	fmt.Println("Payload:", string(data))
	req, err := http.NewRequest(method, url, bytes.NewBuffer(data))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	fmt.Println(method, url, "status:", resp.Status)

	var out submission
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Println("Error decoding response:", err)
	}
	return out
}
