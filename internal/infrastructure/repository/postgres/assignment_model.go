package postgres

import (
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
)

type assignmentTableModel struct {
	ID             string     `db:"id"`
	OrganizationID string     `db:"organization_id"`
	GameID         string     `db:"game_id"`
	OfficialID     string     `db:"official_id"`
	Role           string     `db:"role"`
	Status         string     `db:"status"`
	AssignedAt     time.Time  `db:"assigned_at"`
	ConfirmedAt    *time.Time `db:"confirmed_at"`
	PayRate        float64    `db:"pay_rate"`
	EstimatedPay   float64    `db:"estimated_pay"`
	ActualPay      *float64   `db:"actual_pay"`
}

func mapAssignmentRow(row assignmentTableModel) assignment.Assignment {
	return assignment.Assignment{
		ID:           row.ID,
		TenantID:     row.OrganizationID,
		GameID:       row.GameID,
		OfficialID:   row.OfficialID,
		Role:         official.Specialty(row.Role),
		Status:       assignment.Status(row.Status),
		AssignedAt:   row.AssignedAt,
		ConfirmedAt:  row.ConfirmedAt,
		PayRate:      row.PayRate,
		EstimatedPay: row.EstimatedPay,
		ActualPay:    row.ActualPay,
	}
}

func assignmentInsertModel(tenantID string, a assignment.Assignment) assignmentTableModel {
	return assignmentTableModel{
		ID:             a.ID,
		OrganizationID: tenantID,
		GameID:         a.GameID,
		OfficialID:     a.OfficialID,
		Role:           string(a.Role),
		Status:         string(a.Status),
		AssignedAt:     a.AssignedAt,
		ConfirmedAt:    a.ConfirmedAt,
		PayRate:        a.PayRate,
		EstimatedPay:   a.EstimatedPay,
		ActualPay:      a.ActualPay,
	}
}
