package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
)

func main() {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://127.0.0.1:8080/api/health")
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	// The health endpoint serves JSON; anything else means a different
	// process answered on the port.
	ct := resp.Header.Get(constants.HeaderContentType)
	if !strings.HasPrefix(ct, constants.ContentTypeJSON) {
		os.Exit(1)
	}
	os.Exit(0)
}
