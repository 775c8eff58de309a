// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/paigang/paigang/pkg/model"
)

// DB 数据访问依赖的最小数据库能力
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// RosterRecord 排班记录
type RosterRecord struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	TotalWorkers int       `json:"total_workers"`
	FTCount      int       `json:"ft_count"`
	PTCount      int       `json:"pt_count"`
	WFTCount     int       `json:"wft_count"`
	WPTCount     int       `json:"wpt_count"`
	SolveTimeMs  int64     `json:"solve_time_ms"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Coverage     [][]int   `json:"coverage"`
	Required     [][]int   `json:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

// RosterWorkerRecord 排班工人记录
type RosterWorkerRecord struct {
	ID              uuid.UUID `json:"id"`
	RosterID        uuid.UUID `json:"roster_id"`
	Seq             int       `json:"seq"` // 结果中的 1 基编号
	Type            string    `json:"type"`
	ShiftStart      int       `json:"shift_start"`
	ShiftEnd        int       `json:"shift_end"`
	DayOff          *int      `json:"day_off,omitempty"`
	ProductiveHours []int     `json:"productive_hours"`
}

// RosterRepositoryInterface 排班仓储接口
type RosterRepositoryInterface interface {
	Create(ctx context.Context, result *model.Result) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RosterRecord, error)
	GetWorkers(ctx context.Context, rosterID uuid.UUID) ([]*RosterWorkerRecord, error)
	List(ctx context.Context, limit, offset int) ([]*RosterRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RosterRepository 排班仓储实现
type RosterRepository struct {
	db DB
}

// NewRosterRepository 创建排班仓储
func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create 保存排班结果及其工人明细
func (r *RosterRepository) Create(ctx context.Context, result *model.Result) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()

	coverageJSON, _ := json.Marshal(result.Coverage.Rows())
	requiredJSON, _ := json.Marshal(result.Required.Rows())

	query := `
		INSERT INTO rosters (
			id, status, total_workers, ft_count, pt_count, wft_count, wpt_count,
			solve_time_ms, error_message, coverage, required, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		id, string(result.Status), result.TotalWorkers,
		result.FTCount, result.PTCount, result.WFTCount, result.WPTCount,
		result.SolveTimeMs, result.ErrorMessage, coverageJSON, requiredJSON, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("创建排班记录失败: %w", err)
	}

	workerQuery := `
		INSERT INTO roster_workers (
			id, roster_id, seq, type, shift_start, shift_end, day_off, productive_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, w := range result.Workers {
		hours := make([]int64, len(w.ProductiveHours))
		for i, h := range w.ProductiveHours {
			hours[i] = int64(h)
		}
		_, err := r.db.ExecContext(ctx, workerQuery,
			uuid.New(), id, w.ID, string(w.Type),
			w.ShiftStart, w.ShiftEnd, w.DayOff, pq.Array(hours),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("创建工人记录失败: %w", err)
		}
	}

	return id, nil
}

// GetByID 根据ID获取排班记录
func (r *RosterRepository) GetByID(ctx context.Context, id uuid.UUID) (*RosterRecord, error) {
	query := `
		SELECT id, status, total_workers, ft_count, pt_count, wft_count, wpt_count,
			solve_time_ms, error_message, coverage, required, created_at
		FROM rosters WHERE id = $1
	`

	rec := &RosterRecord{}
	var coverageJSON, requiredJSON []byte
	var errorMessage sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Status, &rec.TotalWorkers,
		&rec.FTCount, &rec.PTCount, &rec.WFTCount, &rec.WPTCount,
		&rec.SolveTimeMs, &errorMessage, &coverageJSON, &requiredJSON, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("排班记录 %s 不存在", id)
	}
	if err != nil {
		return nil, fmt.Errorf("查询排班记录失败: %w", err)
	}

	rec.ErrorMessage = errorMessage.String
	json.Unmarshal(coverageJSON, &rec.Coverage)
	json.Unmarshal(requiredJSON, &rec.Required)

	return rec, nil
}

// GetWorkers 获取排班的工人明细
func (r *RosterRepository) GetWorkers(ctx context.Context, rosterID uuid.UUID) ([]*RosterWorkerRecord, error) {
	query := `
		SELECT id, roster_id, seq, type, shift_start, shift_end, day_off, productive_hours
		FROM roster_workers WHERE roster_id = $1 ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, rosterID)
	if err != nil {
		return nil, fmt.Errorf("查询工人记录失败: %w", err)
	}
	defer rows.Close()

	var workers []*RosterWorkerRecord
	for rows.Next() {
		w := &RosterWorkerRecord{}
		var dayOff sql.NullInt64
		var hours pq.Int64Array

		if err := rows.Scan(
			&w.ID, &w.RosterID, &w.Seq, &w.Type,
			&w.ShiftStart, &w.ShiftEnd, &dayOff, &hours,
		); err != nil {
			return nil, fmt.Errorf("扫描工人记录失败: %w", err)
		}

		if dayOff.Valid {
			v := int(dayOff.Int64)
			w.DayOff = &v
		}
		w.ProductiveHours = make([]int, len(hours))
		for i, h := range hours {
			w.ProductiveHours[i] = int(h)
		}

		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// List 分页列出排班记录
func (r *RosterRepository) List(ctx context.Context, limit, offset int) ([]*RosterRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, status, total_workers, ft_count, pt_count, wft_count, wpt_count,
			solve_time_ms, error_message, coverage, required, created_at
		FROM rosters ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("查询排班列表失败: %w", err)
	}
	defer rows.Close()

	var records []*RosterRecord
	for rows.Next() {
		rec := &RosterRecord{}
		var coverageJSON, requiredJSON []byte
		var errorMessage sql.NullString

		if err := rows.Scan(
			&rec.ID, &rec.Status, &rec.TotalWorkers,
			&rec.FTCount, &rec.PTCount, &rec.WFTCount, &rec.WPTCount,
			&rec.SolveTimeMs, &errorMessage, &coverageJSON, &requiredJSON, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描排班记录失败: %w", err)
		}

		rec.ErrorMessage = errorMessage.String
		json.Unmarshal(coverageJSON, &rec.Coverage)
		json.Unmarshal(requiredJSON, &rec.Required)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Delete 删除排班记录及其工人明细
func (r *RosterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM roster_workers WHERE roster_id = $1`, id); err != nil {
		return fmt.Errorf("删除工人记录失败: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rosters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("删除排班记录失败: %w", err)
	}
	return nil
}
