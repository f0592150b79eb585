package app

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/kshamiyah/investbot/internal/storage"
)

// Export renders the alert history as CSV and/or a PNG chart.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot export")
	}
	if closeStore != nil {
		defer closeStore()
	}

	to := time.Now().UTC()
	if opts.To != nil {
		to = opts.To.UTC()
	}

	from := to.AddDate(0, 0, -30)
	if opts.From != nil {
		from = opts.From.UTC()
	}

	if !from.Before(to) {
		return errors.New("from must be before to")
	}

	records, err := store.ListAlertsBetween(ctx, from, to)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		a.Logger.Info().Msg("no alerts found for export window")
		return nil
	}

	downsampled := downsampleRecords(records, opts.MaxPoints)
	a.Logger.Info().Int("total", len(records)).Int("exported", len(downsampled)).Msg("exporting alert history")

	if opts.CSVPath != "" {
		if err := writeAlertsCSV(opts.CSVPath, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeAlertsPNG(opts.PNGPath, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func downsampleRecords(records []storage.AlertRecord, max int) []storage.AlertRecord {
	if max <= 0 || len(records) <= max {
		return records
	}

	result := make([]storage.AlertRecord, 0, max)
	step := float64(len(records)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(records) {
			idx = len(records) - 1
		}
		result = append(result, records[idx])
	}
	return result
}

func writeAlertsCSV(path string, records []storage.AlertRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"created_at", "kind", "subject", "change_pct", "urgency", "alert_key"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		change := ""
		if rec.ChangePct.Valid {
			change = rec.ChangePct.Decimal.String()
		}
		row := []string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.Kind,
			rec.Subject,
			change,
			rec.Urgency,
			rec.AlertKey,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// writeAlertsPNG charts price-move magnitudes over time alongside the
// cumulative alert volume. Filing and summary records carry no percentage,
// so only price records feed the magnitude series.
func writeAlertsPNG(path string, records []storage.AlertRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var moveX []time.Time
	var moveY []float64
	volumeX := make([]time.Time, len(records))
	volumeY := make([]float64, len(records))

	for i, rec := range records {
		volumeX[i] = rec.CreatedAt
		volumeY[i] = float64(i + 1)
		if rec.Kind == storage.KindPrice && rec.ChangePct.Valid {
			moveX = append(moveX, rec.CreatedAt)
			moveY = append(moveY, rec.ChangePct.Decimal.InexactFloat64())
		}
	}

	pctFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Cumulative alerts",
			XValues: volumeX,
			YValues: volumeY,
			YAxis:   chart.YAxisSecondary,
		},
	}
	if len(moveX) > 1 {
		series = append(series, chart.TimeSeries{
			Name:    "Price move %",
			XValues: moveX,
			YValues: moveY,
		})
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price move (%)",
			ValueFormatter: pctFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Alerts delivered",
			ValueFormatter: pctFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
