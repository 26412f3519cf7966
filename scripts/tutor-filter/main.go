package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Ad hoc check for the guardian-name filter: fetches the roster from a
// running instance and filters locally, so the two result sets can be
// compared by eye.

type envelope struct {
	Data []student `json:"data"`
}

type student struct {
	Name    string `json:"nombre"`
	Grade   string `json:"grado"`
	Section string `json:"seccion"`
	Contact *struct {
		Tutor string `json:"tutor"`
	} `json:"contacto"`
}

func main() {
	var (
		base  string
		tutor string
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&tutor, "tutor", "García", "Guardian name substring")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Get(base + "/api/v1/estudiantes")
	if err != nil {
		log.Fatalf("fetch students: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}

	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Fatalf("decode response: %v", err)
	}

	needle := strings.ToLower(tutor)
	var matched []string
	for _, s := range payload.Data {
		if s.Contact == nil {
			continue
		}
		if strings.Contains(strings.ToLower(s.Contact.Tutor), needle) {
			matched = append(matched, fmt.Sprintf("%s (%s %s)", s.Name, s.Grade, s.Section))
		}
	}

	fmt.Printf("students matching guardian %q: %d\n", tutor, len(matched))
	for _, line := range matched {
		fmt.Println("  " + line)
	}
}
