package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	nNotes   = flag.Int("n", envInt("COUNT", 50), "How many notes the viewer creates")
	nForeign = flag.Int("foreign", envInt("FOREIGN_COUNT", 10), "How many notes by other authors to import")
	pinPct   = flag.Int("pin", envInt("PIN_PERCENT", 20), "Percentage of created notes to pin")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------
func postJSON(path string, body any) (*http.Response, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(http.MethodPost, *baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding %d notes (+%d foreign) on %s\n", *nNotes, *nForeign, *baseURL)

	if err := createNotes(*nNotes); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := importForeignNotes(*nForeign); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// ----------------------------------------------------------------------------
// Step 1 – notes by the viewer -----------------------------------------------
func createNotes(total int) error {
	for i := 1; i <= total; i++ {
		note := map[string]string{
			"title": gofakeit.Sentence(3),
			"body":  gofakeit.Paragraph(1, 3, 40, " "),
		}

		resp, err := postJSON("/api/v1/notes", note)
		if err != nil {
			return err
		}
		switch resp.StatusCode {
		case http.StatusCreated:
		case http.StatusNoContent:
			must(resp.Body)
			return fmt.Errorf("server runs in guest mode, notes cannot be created")
		default:
			return fmt.Errorf("create note %d failed (%d): %s", i, resp.StatusCode, must(resp.Body))
		}

		var created struct {
			Note struct {
				ID string `json:"id"`
			} `json:"note"`
		}
		if err := json.Unmarshal(must(resp.Body), &created); err != nil {
			return fmt.Errorf("decode note %d: %w", i, err)
		}

		if gofakeit.Number(1, 100) <= *pinPct {
			if err := pin(created.Note.ID); err != nil {
				return err
			}
		}

		if i%10 == 0 || i == total {
			fmt.Printf("  … %d/%d\n", i, total)
		}
	}
	return nil
}

func pin(id string) error {
	resp, err := postJSON("/api/v1/notes/"+id+"/pin", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pin %s failed (%d): %s", id, resp.StatusCode, must(resp.Body))
	}
	must(resp.Body)
	return nil
}

// ----------------------------------------------------------------------------
// Step 2 – notes by other authors, so there is something to hide -------------
func importForeignNotes(total int) error {
	authors := make([]map[string]any, 3)
	for i := range authors {
		authors[i] = map[string]any{
			"username":      gofakeit.Username(),
			"id":            uuid.NewString(),
			"creation_date": map[string]int64{"epoch_time": gofakeit.PastDate().Unix()},
		}
	}

	for i := 1; i <= total; i++ {
		note := map[string]any{
			"id":         uuid.NewString(),
			"title":      gofakeit.HipsterSentence(3),
			"body":       gofakeit.Quote(),
			"author":     authors[gofakeit.Number(0, len(authors)-1)],
			"created_at": map[string]int64{"epoch_time": gofakeit.PastDate().Unix()},
		}

		resp, err := postJSON("/api/v1/notes/import", note)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("import note %d failed (%d): %s", i, resp.StatusCode, must(resp.Body))
		}
		must(resp.Body)
	}
	return nil
}
