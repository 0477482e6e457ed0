package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/course-api/internal/models"
)

const selectCourseWithOwner = `
	SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed,
	       c.user_id, c.created_at, c.updated_at,
	       u.id AS "owner.id", u.first_name AS "owner.first_name",
	       u.last_name AS "owner.last_name", u.email_address AS "owner.email_address"
	FROM courses c
	JOIN users u ON u.id = c.user_id
`

// CourseReadRepository handles course read operations
type CourseReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCourseReadRepository(db *sqlx.DB, txGetter TxGetter) *CourseReadRepository {
	return &CourseReadRepository{db: db, txGetter: txGetter}
}

// GetAll returns every course joined with its owner, ordered by id.
// The result is never nil.
func (r *CourseReadRepository) GetAll(ctx context.Context) ([]models.CourseWithOwnerDB, error) {
	const query = selectCourseWithOwner + `ORDER BY c.id`

	courses := []models.CourseWithOwnerDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &courses, query)
	logQuery(ctx, query, nil, len(courses), err)
	if err != nil {
		return nil, mapError(err)
	}

	return courses, nil
}

// GetByID returns a single course joined with its owner.
func (r *CourseReadRepository) GetByID(ctx context.Context, courseID int64) (*models.CourseWithOwnerDB, error) {
	const query = selectCourseWithOwner + `WHERE c.id = $1`

	var course models.CourseWithOwnerDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &course, query, courseID)
	logQuery(ctx, query, []any{courseID}, course.CourseID, err)
	if err != nil {
		return nil, mapError(err)
	}

	return &course, nil
}

// CourseWriteRepository handles course write operations
type CourseWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCourseWriteRepository(db *sqlx.DB, txGetter TxGetter) *CourseWriteRepository {
	return &CourseWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a course and returns its id. An unknown owner yields ErrForeignKey.
func (r *CourseWriteRepository) Save(ctx context.Context, course *models.CourseDB) (int64, error) {
	const query = `
		INSERT INTO courses (title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	args := []any{course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded, course.UserID}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, args...)
	logQuery(ctx, query, args, id, err)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// Update rewrites the editable fields of a course. The owner is left untouched.
func (r *CourseWriteRepository) Update(ctx context.Context, course *models.CourseDB) error {
	const query = `
		UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = NOW()
		WHERE id = $5
	`
	args := []any{course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded, course.CourseID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, args, rowsAffected, err)

	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course by id.
func (r *CourseWriteRepository) Delete(ctx context.Context, courseID int64) error {
	const query = `DELETE FROM courses WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, courseID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, []any{courseID}, rowsAffected, err)

	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
