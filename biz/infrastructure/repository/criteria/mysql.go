package criteria

import (
	"context"
	"database/sql"
	"fmt"

	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/util/log"

	_ "github.com/go-sql-driver/mysql"
)

// 评分标准与等级方案由宿主平台维护在MySQL中，这里只读

type MySQLMapper struct {
	db *sql.DB
}

// RatingCriterion 对应 RatingCriteria 表
type RatingCriterion struct {
	Key          string  `db:"criterion_key"`
	TaskKey      string  `db:"task_key"`
	CorrectorKey *string `db:"corrector_key"` // 空表示通用标准
	Title        string  `db:"title"`
	Description  *string `db:"description"`
	Points       float64 `db:"points"`
	IsGeneral    bool    `db:"is_general"`
}

// GradeLevel 对应 GradeLevels 表
type GradeLevel struct {
	Key       string  `db:"level_key"`
	TaskKey   string  `db:"task_key"`
	Title     string  `db:"title"`
	MinPoints float64 `db:"min_points"`
}

type IMySQLMapper interface {
	ListRatingCriteria(ctx context.Context, taskKey string) ([]*RatingCriterion, error)
	ListGradeLevels(ctx context.Context, taskKey string) ([]*GradeLevel, error)
	Close() error
}

func NewMySQLMapper(c *config.Config) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", c.MySQL.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db}, nil
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

// ListRatingCriteria 获取某个任务的全部评分标准
func (m *MySQLMapper) ListRatingCriteria(ctx context.Context, taskKey string) ([]*RatingCriterion, error) {
	query := `SELECT criterion_key, task_key, corrector_key, title, description, points, is_general
		FROM RatingCriteria WHERE task_key = ? ORDER BY title`

	rows, err := m.db.QueryContext(ctx, query, taskKey)
	if err != nil {
		return nil, fmt.Errorf("query rating criteria failed: %w", err)
	}
	defer rows.Close()

	var criteria []*RatingCriterion
	for rows.Next() {
		c := new(RatingCriterion)
		if err := rows.Scan(&c.Key, &c.TaskKey, &c.CorrectorKey, &c.Title, &c.Description, &c.Points, &c.IsGeneral); err != nil {
			return nil, fmt.Errorf("scan rating criterion failed: %w", err)
		}
		criteria = append(criteria, c)
	}
	return criteria, rows.Err()
}

// ListGradeLevels 获取某个任务的等级方案，按最低分升序
func (m *MySQLMapper) ListGradeLevels(ctx context.Context, taskKey string) ([]*GradeLevel, error) {
	query := `SELECT level_key, task_key, title, min_points
		FROM GradeLevels WHERE task_key = ? ORDER BY min_points`

	rows, err := m.db.QueryContext(ctx, query, taskKey)
	if err != nil {
		return nil, fmt.Errorf("query grade levels failed: %w", err)
	}
	defer rows.Close()

	var levels []*GradeLevel
	for rows.Next() {
		l := new(GradeLevel)
		if err := rows.Scan(&l.Key, &l.TaskKey, &l.Title, &l.MinPoints); err != nil {
			return nil, fmt.Errorf("scan grade level failed: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
