package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	"github.com/LacerdaAcacio/agendei-booking/pkg/dbmetrics"
	"github.com/LacerdaAcacio/agendei-booking/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"resource_id",
	"client_id",
	"owner_id",
	"start_at",
	"end_at",
	"status",
	"total_price",
	"service_fee",
	"owner_earnings",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindConfirmedOverlapping возвращает подтверждённое бронирование ресурса, пересекающееся с [start, end),
// или nil, если такого нет. excludeID исключает бронирование из проверки (перенос).
//
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindConfirmedOverlapping(
	ctx context.Context,
	resourceID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overlappingQuery(resourceID, start, end, excludeID, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlapping - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// FindConfirmedOnDate возвращает интервалы подтверждённых бронирований ресурса,
// задевающих окно [dayStart, dayEnd), в хронологическом порядке
func (r *Repository) FindConfirmedOnDate(ctx context.Context, resourceID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := onDateQuery(resourceID, dayStart, dayEnd).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOnDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var i domain.Interval
		if err := rows.Scan(&i.Start, &i.End); err != nil {
			return nil, fmt.Errorf("%w: FindConfirmedOnDate - scan interval: %w", ErrScanRow, err)
		}
		intervals = append(intervals, domain.Interval{Start: i.Start.UTC(), End: i.End.UTC()})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOnDate - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// Insert сохраняет новое бронирование.
// Нарушение ограничения reservations_no_overlap возвращается как ErrOverlap.
func (r *Repository) Insert(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}

	query, args, err := insertQuery(reservation).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if dbmetrics.IsExclusionViolation(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// FindByID получает бронирование по ID
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	// строка блокируется до конца транзакции, чтобы статус не поменялся между проверкой и записью
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// UpdateStatus меняет статус бронирования и возвращает обновлённую запись.
// Для CANCELLED дополнительно сохраняются причина и время отмены.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ReservationStatus,
	reason *string,
) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateStatusQuery(id, status, reason).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// UpdateFields заменяет интервал и стоимость бронирования. ID и статус не меняются.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields domain.ReservationFields) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateFieldsQuery(id, fields).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateFields - build update query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		if dbmetrics.IsExclusionViolation(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: UpdateFields - execute update: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByClientID получает историю бронирований клиента (сначала новые).
// Опционально фильтрует по статусу.
func (r *Repository) GetByClientID(ctx context.Context, clientID uuid.UUID, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := byClientQuery(clientID, status).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByResourceWithFilter получает бронирования ресурса.
// From/To отбирают бронирования, пересекающиеся с окном [From, To).
func (r *Repository) GetByResourceWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := byResourceQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Построители запросов

func overlappingQuery(resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID, lock bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		// пересечение полуоткрытых интервалов: start_at < end AND end_at > start
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start})

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	builder = builder.OrderBy("start_at ASC").Limit(1)

	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

func onDateQuery(resourceID uuid.UUID, dayStart, dayEnd time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("start_at", "end_at").
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		Where(squirrel.Gt{"end_at": dayStart}).
		OrderBy("start_at ASC")
}

func insertQuery(r *domain.Reservation) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns(
			"id",
			"resource_id",
			"client_id",
			"owner_id",
			"start_at",
			"end_at",
			"status",
			"total_price",
			"service_fee",
			"owner_earnings",
		).
		Values(
			r.ID,
			r.ResourceID,
			r.ClientID,
			r.OwnerID,
			r.StartAt.UTC(),
			r.EndAt.UTC(),
			r.Status,
			r.TotalPrice,
			r.ServiceFee,
			r.OwnerEarnings,
		).
		Suffix("RETURNING created_at, updated_at")
}

func updateStatusQuery(id uuid.UUID, status domain.ReservationStatus, reason *string) squirrel.UpdateBuilder {
	builder := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()"))

	if status == domain.StatusCancelled {
		builder = builder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	return builder.
		Where(squirrel.Eq{"id": id}).
		Suffix(returningColumns())
}

func updateFieldsQuery(id uuid.UUID, f domain.ReservationFields) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("start_at", f.StartAt.UTC()).
		Set("end_at", f.EndAt.UTC()).
		Set("total_price", f.TotalPrice).
		Set("service_fee", f.ServiceFee).
		Set("owner_earnings", f.OwnerEarnings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returningColumns())
}

func byClientQuery(clientID uuid.UUID, status *domain.ReservationStatus) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	return builder
}

func byResourceQuery(filter domain.ResourceReservationsFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": filter.ResourceID})

	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return builder.OrderBy("start_at ASC")
}

func returningColumns() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// Сканирование

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		r                    domain.Reservation
		createdAt, updatedAt sql.NullTime
		cancelledAt          sql.NullTime
		reason               sql.NullString
	)

	err := row.Scan(
		&r.ID,
		&r.ResourceID,
		&r.ClientID,
		&r.OwnerID,
		&r.StartAt,
		&r.EndAt,
		&r.Status,
		&r.TotalPrice,
		&r.ServiceFee,
		&r.OwnerEarnings,
		&reason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.StartAt = r.StartAt.UTC()
	r.EndAt = r.EndAt.UTC()
	r.CreatedAt = createdAt.Time
	r.UpdatedAt = updatedAt.Time
	if reason.Valid {
		r.CancellationReason = &reason.String
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		r.CancelledAt = &t
	}

	return &r, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
