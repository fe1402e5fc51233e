package depositstore

import (
	"clinic-booking/common/contract"
	"clinic-booking/model"
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Store persists deposit flow sessions. A session is the one mutable piece
// of state this service owns: everything else is a read-through copy of an
// upstream service.
type Store struct {
	Db contract.DbConn
}

func New(db contract.DbConn) *Store {
	return &Store{Db: db}
}

const insertSessionSQL = `INSERT INTO deposit_sessions
(external_id, customer_id, customer_email, transaction_id, amount, qr_url, bank_number, status, expired_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8)
RETURNING id`

func (s *Store) InsertSession(ctx context.Context, session model.DepositSession) (int32, error) {
	var id int32
	err := s.Db.QueryRow(ctx, insertSessionSQL,
		session.ExternalId,
		session.CustomerId,
		session.CustomerEmail,
		session.TransactionId,
		session.Amount,
		session.QrUrl,
		session.BankNumber,
		pgtype.Timestamp{Time: session.ExpiredAt, Valid: true},
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

const findSessionByExternalIdSQL = `SELECT id, external_id, customer_id, customer_email, transaction_id, amount, qr_url, bank_number, status, expired_at
FROM deposit_sessions
WHERE external_id = $1`

func (s *Store) FindSessionByExternalId(ctx context.Context, externalId string) (model.DepositSession, error) {
	var session model.DepositSession
	var expiredAt pgtype.Timestamp

	err := s.Db.QueryRow(ctx, findSessionByExternalIdSQL, externalId).Scan(
		&session.Id,
		&session.ExternalId,
		&session.CustomerId,
		&session.CustomerEmail,
		&session.TransactionId,
		&session.Amount,
		&session.QrUrl,
		&session.BankNumber,
		&session.Status,
		&expiredAt,
	)
	if err != nil {
		return model.DepositSession{}, err
	}

	session.ExpiredAt = expiredAt.Time
	return session, nil
}

const resolveSessionSQL = `UPDATE deposit_sessions
SET status = $2, updated_at = $3
WHERE transaction_id = $1 AND status = 'pending'
RETURNING id, external_id, customer_id, customer_email, transaction_id, amount, qr_url, bank_number, status, expired_at`

// ResolveSession applies the single permitted transition, pending to a
// terminal status, keyed by transaction. Concurrent resolvers race on the
// status predicate: exactly one gets the row back, the rest see
// pgx.ErrNoRows.
func (s *Store) ResolveSession(ctx context.Context, transactionId string, status model.DepositStatus, now time.Time) (model.DepositSession, error) {
	var session model.DepositSession
	var expiredAt pgtype.Timestamp

	err := s.Db.QueryRow(ctx, resolveSessionSQL,
		transactionId,
		string(status),
		pgtype.Timestamp{Time: now, Valid: true},
	).Scan(
		&session.Id,
		&session.ExternalId,
		&session.CustomerId,
		&session.CustomerEmail,
		&session.TransactionId,
		&session.Amount,
		&session.QrUrl,
		&session.BankNumber,
		&session.Status,
		&expiredAt,
	)
	if err != nil {
		return model.DepositSession{}, err
	}

	session.ExpiredAt = expiredAt.Time
	return session, nil
}

const listExpiredPendingSQL = `SELECT id, external_id, customer_id, customer_email, transaction_id, amount, qr_url, bank_number, status, expired_at
FROM deposit_sessions
WHERE status = 'pending' AND expired_at < $1
ORDER BY expired_at
LIMIT $2`

func (s *Store) ListExpiredPending(ctx context.Context, now time.Time, limit int32) ([]model.DepositSession, error) {
	rows, err := s.Db.Query(ctx, listExpiredPendingSQL, pgtype.Timestamp{Time: now, Valid: true}, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.DepositSession
	for rows.Next() {
		var session model.DepositSession
		var expiredAt pgtype.Timestamp

		err = rows.Scan(
			&session.Id,
			&session.ExternalId,
			&session.CustomerId,
			&session.CustomerEmail,
			&session.TransactionId,
			&session.Amount,
			&session.QrUrl,
			&session.BankNumber,
			&session.Status,
			&expiredAt,
		)
		if err != nil {
			return nil, err
		}

		session.ExpiredAt = expiredAt.Time
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
