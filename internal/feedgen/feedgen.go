// Package feedgen serves synthetic copies of the two upstream sheets so
// the dashboard can be exercised without a live Google Sheets export.
package feedgen

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/preserve/internal/adapters/feed"
	"github.com/okian/preserve/pkg/logger"
)

// Config controls the generated data set.
type Config struct {
	Addr     string
	NumRows  int
	Seed     time.Time
	BasePoint
}

// BasePoint anchors the generated coordinates.
type BasePoint struct {
	Latitude  float64
	Longitude float64
}

// Pools of values the generator draws from.
var (
	crews = []string{"Alpha Crew", "Bravo Crew", "Castillo Bros", "DMR Services", ""}

	statuses = []string{
		"work complete, invoice submitted",
		"overdue, crew rescheduled",
		"ongoing, will be finished Friday",
		"waiting on bid approval",
		"pricing under review",
		"no update",
		"done, payment received",
		"try to finish tomorrow",
	}

	details = []string{
		"grass cut", "winterization", "board up", "debris removal",
		"lock change", "roof tarp", "pool securing",
	}

	woTypes   = []string{"Routine", "Biweekly", "Initial Secure"}
	mapStatus = []string{"Overdue", "Bid request", "Biweekly"}
	vendors   = []string{"VRM", "Cyprex", "MCS"}
)

func randomInt(limit int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	return int(n.Int64())
}

// UpdatesCSV renders a synthetic work-order status sheet.
func UpdatesCSV(cfg *Config) [][]string {
	rows := [][]string{feed.UpdateColumns()}
	for i := 0; i < cfg.NumRows; i++ {
		due := ""
		switch randomInt(4) {
		case 0:
			due = cfg.Seed.AddDate(0, 0, randomInt(21)-7).Format("2/1/2006")
		case 1:
			due = cfg.Seed.AddDate(0, 0, randomInt(21)-7).Format("1/2/06")
		case 2:
			due = "next friday"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d Oak St", 10+i*2),
			details[randomInt(len(details))],
			crews[randomInt(len(crews))],
			due,
			statuses[randomInt(len(statuses))],
			"",
		})
	}
	return rows
}

// PropertiesCSV renders a synthetic geocoded property sheet. Roughly one
// row in ten gets a broken coordinate so drop handling stays exercised.
func PropertiesCSV(cfg *Config) [][]string {
	rows := [][]string{feed.PropertyColumns()}
	for i := 0; i < cfg.NumRows; i++ {
		lat := strconv.FormatFloat(cfg.Latitude+float64(randomInt(200)-100)/1000, 'f', 4, 64)
		lon := strconv.FormatFloat(cfg.Longitude+float64(randomInt(200)-100)/1000, 'f', 4, 64)
		if randomInt(10) == 0 {
			lat = "n/a"
		}
		rows = append(rows, []string{
			fmt.Sprintf("WO-%04d", 1000+i),
			fmt.Sprintf("%d Oak St", 10+i*2),
			lat,
			lon,
			mapStatus[randomInt(len(mapStatus))],
			vendors[randomInt(len(vendors))],
			woTypes[randomInt(len(woTypes))],
			cfg.Seed.AddDate(0, 0, randomInt(14)).Format("2/1/2006"),
			"",
			"",
			"",
			"",
		})
	}
	return rows
}

// Serve runs an HTTP server exposing the two synthetic sheets as CSV until
// ctx is canceled.
func Serve(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("feedgen")

	writeCSV := func(w http.ResponseWriter, rows [][]string) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		cw := csv.NewWriter(w)
		_ = cw.WriteAll(rows)
		cw.Flush()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/updates.csv", func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, UpdatesCSV(cfg))
	})
	mux.HandleFunc("/properties.csv", func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, PropertiesCSV(cfg))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "feedgen listening",
		logger.String("addr", cfg.Addr),
		logger.Int("rows", cfg.NumRows),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("feedgen serve: %w", err)
	}
	return nil
}
