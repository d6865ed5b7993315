package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbanfix/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) CreateUser(ctx context.Context, u models.User) (int64, error) {
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, department_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Name, u.Email, u.PasswordHash, u.Role, u.DepartmentID, u.CreatedAt).Scan(&id)
	return id, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, department_id, created_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.DepartmentID, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, department_id, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.DepartmentID, &u.CreatedAt)
	return u, err
}

// ListDepartments returns the directory in id order. The ordering is part
// of the contract: tie-breaking in classification and nearest-department
// selection depends on a stable sequence.
func (s *Store) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, latitude, longitude FROM departments ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Latitude, &d.Longitude); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (models.Department, error) {
	var d models.Department
	err := s.Pool.QueryRow(ctx, `SELECT id, name, latitude, longitude FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Latitude, &d.Longitude)
	return d, err
}

// InsertDepartments bulk-loads directory records inside one transaction,
// so a partially applied seed never becomes visible.
func (s *Store) InsertDepartments(ctx context.Context, departments []models.Department) (int64, error) {
	rows := make([][]any, 0, len(departments))
	for _, d := range departments {
		rows = append(rows, []any{d.Name, d.Latitude, d.Longitude})
	}
	var inserted int64
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		count, err := tx.CopyFrom(ctx, pgx.Identifier{"departments"}, []string{"name", "latitude", "longitude"}, pgx.CopyFromRows(rows))
		if err != nil {
			return err
		}
		inserted = count
		return nil
	})
	return inserted, err
}

func (s *Store) CreateIssue(ctx context.Context, issue models.Issue) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO issues (id, citizen_id, department_id, issue_type, description, latitude, longitude, address, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, issue.ID, issue.CitizenID, issue.DepartmentID, issue.IssueType, issue.Description,
		issue.Latitude, issue.Longitude, issue.Address, issue.Status, issue.CreatedAt)
	return err
}

func (s *Store) GetIssue(ctx context.Context, id string) (models.Issue, error) {
	var issue models.Issue
	err := s.Pool.QueryRow(ctx, `
		SELECT id, citizen_id, department_id, issue_type, description, latitude, longitude, address, status, created_at
		FROM issues WHERE id = $1
	`, id).Scan(&issue.ID, &issue.CitizenID, &issue.DepartmentID, &issue.IssueType, &issue.Description,
		&issue.Latitude, &issue.Longitude, &issue.Address, &issue.Status, &issue.CreatedAt)
	return issue, err
}

func (s *Store) ListIssuesByCitizen(ctx context.Context, citizenID int64, status string) ([]models.Issue, error) {
	query := `
		SELECT id, citizen_id, department_id, issue_type, description, latitude, longitude, address, status, created_at
		FROM issues WHERE citizen_id = $1`
	args := []any{citizenID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	return s.queryIssues(ctx, query, args...)
}

func (s *Store) ListIssuesByDepartment(ctx context.Context, departmentID int64, statuses []string) ([]models.Issue, error) {
	query := `
		SELECT id, citizen_id, department_id, issue_type, description, latitude, longitude, address, status, created_at
		FROM issues WHERE department_id = $1`
	args := []any{departmentID}
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, st := range statuses {
			args = append(args, st)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY created_at DESC"
	return s.queryIssues(ctx, query, args...)
}

func (s *Store) queryIssues(ctx context.Context, query string, args ...any) ([]models.Issue, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Issue
	for rows.Next() {
		var issue models.Issue
		if err := rows.Scan(&issue.ID, &issue.CitizenID, &issue.DepartmentID, &issue.IssueType, &issue.Description,
			&issue.Latitude, &issue.Longitude, &issue.Address, &issue.Status, &issue.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, issue)
	}
	return out, rows.Err()
}

func (s *Store) UpdateIssueStatus(ctx context.Context, id string, status string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE issues SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) InsertAttendance(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO attendance (issue_id, staff_id, staff_latitude, staff_longitude, distance_meters, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, rec.IssueID, rec.StaffID, rec.StaffLatitude, rec.StaffLongitude, rec.DistanceMeters, rec.CreatedAt).Scan(&rec.ID)
	return rec, err
}

func (s *Store) ListAttendanceByIssue(ctx context.Context, issueID string) ([]models.AttendanceRecord, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, issue_id, staff_id, staff_latitude, staff_longitude, distance_meters, created_at
		FROM attendance WHERE issue_id = $1 ORDER BY created_at ASC
	`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.IssueID, &rec.StaffID, &rec.StaffLatitude, &rec.StaffLongitude,
			&rec.DistanceMeters, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
