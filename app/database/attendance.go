package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/models"
)

// AttendanceFilters represents filtering options for attendance listings
type AttendanceFilters struct {
	TeacherSearch string
	StartDate     *time.Time
	EndDate       *time.Time
	Verified      *bool
	Limit         int
	Offset        int
}

const attendanceColumns = `a.id, a.teacher_id, a.date, a.breakfast, a.lunch, a.dinner, a.marked_by,
			  a.is_verified, a.verification_note, a.verified_at, a.dispute_status, a.dispute_reason,
			  a.created_at, a.updated_at`

// CivilDay returns t's calendar day in its own location as the UTC date
// value the date columns store. Truncating to 24h would cut at UTC midnight
// and, east of UTC, land early-morning times on the previous day.
func CivilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func scanAttendance(scanner interface {
	Scan(dest ...interface{}) error
}, record *models.Attendance) error {
	return scanner.Scan(
		&record.ID, &record.TeacherID, &record.Date, &record.Breakfast, &record.Lunch, &record.Dinner,
		&record.MarkedBy, &record.IsVerified, &record.VerificationNote, &record.VerifiedAt,
		&record.DisputeStatus, &record.DisputeReason, &record.CreatedAt, &record.UpdatedAt,
	)
}

// CreateAttendance inserts a record. The unique (teacher_id, date) constraint
// rejects a second record for the same teacher and day.
func CreateAttendance(db *sql.DB, record *models.Attendance) error {
	query := `INSERT INTO attendances (teacher_id, date, breakfast, lunch, dinner, marked_by, is_verified, verification_note, verified_at, dispute_status, dispute_reason, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	status := record.DisputeStatus
	if status == "" {
		status = models.DisputeNone
	}
	return db.QueryRow(query,
		record.TeacherID, record.Date, record.Breakfast, record.Lunch, record.Dinner,
		record.MarkedBy, record.IsVerified, record.VerificationNote, record.VerifiedAt,
		status, record.DisputeReason,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

// UpdateAttendance replaces the editable fields of a record.
func UpdateAttendance(db *sql.DB, record *models.Attendance) error {
	query := `UPDATE attendances SET teacher_id = $1, date = $2, breakfast = $3, lunch = $4, dinner = $5,
			  marked_by = $6, is_verified = $7, verification_note = $8, verified_at = $9, updated_at = NOW()
			  WHERE id = $10`

	result, err := db.Exec(query,
		record.TeacherID, record.Date, record.Breakfast, record.Lunch, record.Dinner,
		record.MarkedBy, record.IsVerified, record.VerificationNote, record.VerifiedAt, record.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// DeleteAttendance removes a record permanently.
func DeleteAttendance(db *sql.DB, id int) error {
	result, err := db.Exec(`DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// GetAttendanceByID fetches one record with the teacher's name joined in.
func GetAttendanceByID(db *sql.DB, id int) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `, u.email, u.full_name
			  FROM attendances a
			  JOIN users u ON a.teacher_id = u.id
			  WHERE a.id = $1`

	record := &models.Attendance{}
	teacher := &models.User{}
	row := db.QueryRow(query, id)
	err := row.Scan(
		&record.ID, &record.TeacherID, &record.Date, &record.Breakfast, &record.Lunch, &record.Dinner,
		&record.MarkedBy, &record.IsVerified, &record.VerificationNote, &record.VerifiedAt,
		&record.DisputeStatus, &record.DisputeReason, &record.CreatedAt, &record.UpdatedAt,
		&teacher.Email, &teacher.FullName,
	)
	if err != nil {
		return nil, err
	}
	teacher.ID = record.TeacherID
	record.Teacher = teacher
	return record, nil
}

// GetAttendanceByTeacherAndDate returns a teacher's record for a date, or nil.
func GetAttendanceByTeacherAndDate(db *sql.DB, teacherID string, date time.Time) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.teacher_id = $1 AND a.date = $2`

	record := &models.Attendance{}
	err := scanAttendance(db.QueryRow(query, teacherID, date), record)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListAttendance returns records matching the filters, newest first.
func ListAttendance(db *sql.DB, filters AttendanceFilters) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `, u.email, u.full_name
			  FROM attendances a
			  JOIN users u ON a.teacher_id = u.id
			  WHERE 1=1`

	var args []interface{}
	argIndex := 1

	if filters.TeacherSearch != "" {
		query += fmt.Sprintf(" AND (u.full_name ILIKE $%d OR u.email ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filters.TeacherSearch+"%")
		argIndex++
	}
	if filters.StartDate != nil {
		query += fmt.Sprintf(" AND a.date >= $%d", argIndex)
		args = append(args, *filters.StartDate)
		argIndex++
	}
	if filters.EndDate != nil {
		query += fmt.Sprintf(" AND a.date <= $%d", argIndex)
		args = append(args, *filters.EndDate)
		argIndex++
	}
	if filters.Verified != nil {
		query += fmt.Sprintf(" AND a.is_verified = $%d", argIndex)
		args = append(args, *filters.Verified)
		argIndex++
	}

	query += " ORDER BY a.date DESC NULLS LAST, a.id DESC"
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{}
		teacher := &models.User{}
		err := rows.Scan(
			&record.ID, &record.TeacherID, &record.Date, &record.Breakfast, &record.Lunch, &record.Dinner,
			&record.MarkedBy, &record.IsVerified, &record.VerificationNote, &record.VerifiedAt,
			&record.DisputeStatus, &record.DisputeReason, &record.CreatedAt, &record.UpdatedAt,
			&teacher.Email, &teacher.FullName,
		)
		if err != nil {
			continue
		}
		teacher.ID = record.TeacherID
		record.Teacher = teacher
		records = append(records, record)
	}
	return records, rows.Err()
}

// ListAttendanceByTeacher returns one teacher's records, newest first.
// limit <= 0 returns everything.
func ListAttendanceByTeacher(db *sql.DB, teacherID string, limit int) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendances a
			  WHERE a.teacher_id = $1 ORDER BY a.date DESC NULLS LAST, a.id DESC`
	args := []interface{}{teacherID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{}
		if err := scanAttendance(rows, record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ListAttendanceForPeriod returns one teacher's dated records inside the
// inclusive range. Rows without a date are excluded here; billing never sees
// them.
func ListAttendanceForPeriod(db *sql.DB, teacherID string, start, end time.Time) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendances a
			  WHERE a.teacher_id = $1 AND a.date IS NOT NULL AND a.date >= $2 AND a.date <= $3
			  ORDER BY a.date`

	rows, err := db.Query(query, teacherID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{}
		if err := scanAttendance(rows, record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ToggleMeal flips one meal flag on today's record for the teacher, creating
// the record when it does not exist yet. Fresh records start with
// is_verified = NULL (pending review). Returns the new state of the flag.
func ToggleMeal(db *sql.DB, teacherID string, date time.Time, meal models.MealType, markedBy string) (bool, error) {
	var column string
	switch meal {
	case models.MealBreakfast:
		column = "breakfast"
	case models.MealLunch:
		column = "lunch"
	case models.MealDinner:
		column = "dinner"
	default:
		return false, fmt.Errorf("invalid meal type %q", meal)
	}

	query := fmt.Sprintf(`INSERT INTO attendances (teacher_id, date, %s, marked_by, created_at, updated_at)
			  VALUES ($1, $2, true, $3, NOW(), NOW())
			  ON CONFLICT (teacher_id, date)
			  DO UPDATE SET %s = NOT attendances.%s, updated_at = NOW()
			  RETURNING %s`, column, column, column, column)

	var taken bool
	err := db.QueryRow(query, teacherID, date, markedBy).Scan(&taken)
	return taken, err
}

// VerifyAttendance records an admin's verification decision.
func VerifyAttendance(db *sql.DB, id int, verified bool, note string) error {
	query := `UPDATE attendances SET is_verified = $1, verification_note = $2, verified_at = NOW(), updated_at = NOW()
			  WHERE id = $3`

	result, err := db.Exec(query, verified, note, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// RaiseDispute moves a teacher's own record from None to Raised.
func RaiseDispute(db *sql.DB, id int, teacherID string, reason string) error {
	query := `UPDATE attendances SET dispute_status = $1, dispute_reason = $2, updated_at = NOW()
			  WHERE id = $3 AND teacher_id = $4 AND dispute_status = $5`

	result, err := db.Exec(query, models.DisputeRaised, reason, id, teacherID, models.DisputeNone)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// ListDisputes returns records whose dispute is still open, newest first.
func ListDisputes(db *sql.DB) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `, u.email, u.full_name
			  FROM attendances a
			  JOIN users u ON a.teacher_id = u.id
			  WHERE a.dispute_status = $1
			  ORDER BY a.date DESC NULLS LAST`

	rows, err := db.Query(query, models.DisputeRaised)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{}
		teacher := &models.User{}
		err := rows.Scan(
			&record.ID, &record.TeacherID, &record.Date, &record.Breakfast, &record.Lunch, &record.Dinner,
			&record.MarkedBy, &record.IsVerified, &record.VerificationNote, &record.VerifiedAt,
			&record.DisputeStatus, &record.DisputeReason, &record.CreatedAt, &record.UpdatedAt,
			&teacher.Email, &teacher.FullName,
		)
		if err != nil {
			continue
		}
		teacher.ID = record.TeacherID
		record.Teacher = teacher
		records = append(records, record)
	}
	return records, rows.Err()
}

// ApproveDispute cancels the disputed record: meal flags are cleared and the
// record marked rejected so billing never charges it again.
func ApproveDispute(db *sql.DB, id int) error {
	query := `UPDATE attendances SET dispute_status = $1, is_verified = false,
			  breakfast = false, lunch = false, dinner = false,
			  verification_note = 'Dispute Approved: Record cancelled.', verified_at = NOW(), updated_at = NOW()
			  WHERE id = $2 AND dispute_status = $3`

	result, err := db.Exec(query, models.DisputeApproved, id, models.DisputeRaised)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// RejectDispute keeps the record chargeable and stores the admin's note.
func RejectDispute(db *sql.DB, id int, adminNote string) error {
	query := `UPDATE attendances SET dispute_status = $1, is_verified = true,
			  verification_note = $2, verified_at = NOW(), updated_at = NOW()
			  WHERE id = $3 AND dispute_status = $4`

	result, err := db.Exec(query, models.DisputeRejected, "Dispute Rejected: "+adminNote, id, models.DisputeRaised)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}
