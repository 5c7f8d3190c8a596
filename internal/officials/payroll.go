package officials

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
)

// PayrollRow is one line of a payroll export: one official on one game.
type PayrollRow struct {
	OfficialID   string
	OfficialName string
	GameDate     time.Time
	GameNumber   string
	Role         official.Specialty
	Hours        float64
	HourlyRate   float64
	TotalPay     float64
	Status       assignment.Status
}

// BuildPayroll projects completed/confirmed assignments within [from, to)
// into payroll rows, joining against the games and officials they
// reference. Assignments whose game or official cannot be resolved are
// skipped rather than failing the whole export.
func BuildPayroll(assignments []assignment.Assignment, games map[string]game.Game, officials map[string]official.Official, from, to time.Time) []PayrollRow {
	var rows []PayrollRow
	for _, a := range assignments {
		g, ok := games[a.GameID]
		if !ok {
			continue
		}
		if g.ScheduledStart.Before(from) || !g.ScheduledStart.Before(to) {
			continue
		}
		if !a.Status.Active() {
			continue
		}
		if a.Status != assignment.StatusConfirmed && g.Status != game.StatusCompleted {
			continue
		}
		of, ok := officials[a.OfficialID]
		if !ok {
			continue
		}

		pay := a.EstimatedPay
		if a.ActualPay != nil {
			pay = *a.ActualPay
		}

		rows = append(rows, PayrollRow{
			OfficialID:   of.ID,
			OfficialName: of.Name,
			GameDate:     g.ScheduledStart,
			GameNumber:   g.GameNumber,
			Role:         a.Role,
			Hours:        float64(g.DurationMinutes) / 60.0,
			HourlyRate:   a.PayRate,
			TotalPay:     pay,
			Status:       a.Status,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].GameDate.Equal(rows[j].GameDate) {
			return rows[i].GameDate.Before(rows[j].GameDate)
		}
		return rows[i].OfficialID < rows[j].OfficialID
	})
	return rows
}

// WritePayrollCSV renders rows as CSV with a header, matching the columns
// official_id, official_name, game_date, game_number, role, hours,
// hourly_rate, total_pay, status.
func WritePayrollCSV(w io.Writer, rows []PayrollRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"official_id", "official_name", "game_date", "game_number", "role", "hours", "hourly_rate", "total_pay", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write payroll header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.OfficialID,
			r.OfficialName,
			r.GameDate.Format(time.RFC3339),
			r.GameNumber,
			string(r.Role),
			fmt.Sprintf("%.2f", r.Hours),
			fmt.Sprintf("%.2f", r.HourlyRate),
			fmt.Sprintf("%.2f", r.TotalPay),
			string(r.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write payroll row for official %s: %w", r.OfficialID, err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush payroll csv: %w", err)
	}
	return nil
}
