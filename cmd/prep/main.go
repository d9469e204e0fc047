// Package main provides the prep trigger CLI. It is meant to run from cron
// every few minutes; when the current time falls inside a prep trigger
// window it fires the matching run against the API server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/trayline/v1/internal/domain/prep"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the Trayline API server")
	slotFlag := flag.String("slot", "", "force a specific slot instead of deriving it from the clock")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout for the prep run")
	flag.Parse()

	var slot prep.Slot
	if *slotFlag != "" {
		parsed, err := prep.ParseSlot(*slotFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "prep: %v\n", err)
			os.Exit(2)
		}
		slot = parsed
	} else {
		derived, ok := prep.SlotForTriggerTime(time.Now())
		if !ok {
			fmt.Println("prep: outside every trigger window, nothing to do")
			return
		}
		slot = derived
	}

	url := fmt.Sprintf("%s/api/v1/prep/%s", strings.TrimRight(*addr, "/"), slot)
	client := &http.Client{Timeout: *timeout}

	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prep: request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prep: read response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "prep: %s run failed (%d): %s\n", slot, resp.StatusCode, strings.TrimSpace(string(body)))
		os.Exit(1)
	}

	var envelope struct {
		Data prep.ExecutionResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		fmt.Fprintf(os.Stderr, "prep: decode response: %v\n", err)
		os.Exit(1)
	}

	result := envelope.Data
	fmt.Printf("prep: %s run done, %d patients, %d orders, %d errors\n",
		slot, result.PatientsProcessed, result.OrdersCreated, len(result.Errors))
}
