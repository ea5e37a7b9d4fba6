package database

import (
	"database/sql"
	"errors"

	"opsconsole-backend/internal/models"
)

var ErrDeptNotFound = errors.New("dept not found")

// DeptRepo handles department database operations
type DeptRepo struct{}

// NewDeptRepo creates a new department repository
func NewDeptRepo() *DeptRepo {
	return &DeptRepo{}
}

// GetByID retrieves a department by ID
func (r *DeptRepo) GetByID(id int64) (*models.Dept, error) {
	dept := &models.Dept{}
	err := DB.QueryRow(`
		SELECT id, parent_id, dept_name, order_num, status
		FROM depts WHERE id = ?
	`, id).Scan(&dept.ID, &dept.ParentID, &dept.DeptName, &dept.OrderNum, &dept.Status)
	if err == sql.ErrNoRows {
		return nil, ErrDeptNotFound
	}
	if err != nil {
		return nil, err
	}
	return dept, nil
}

// Create creates a new department
func (r *DeptRepo) Create(dept *models.Dept) error {
	result, err := DB.Exec(`
		INSERT INTO depts (parent_id, dept_name, order_num, status)
		VALUES (?, ?, ?, ?)
	`, dept.ParentID, dept.DeptName, dept.OrderNum, dept.Status)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	dept.ID = id
	return nil
}
