package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type certificateRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *certificateRepo) SaveCertificate(ctx context.Context, rec CertificateRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("certificate ID is required")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO certificates (
		id, sequence, issued_at, name, score, video_id, title, session_id, path
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, seqNum, formatTime(rec.IssuedAt), rec.Name, rec.Score,
		rec.VideoID, rec.Title, rec.SessionID, rec.Path,
	)
	if err != nil {
		return fmt.Errorf("save certificate: %w", err)
	}
	return nil
}

func (r *certificateRepo) ListCertificates(ctx context.Context, opts QueryOpts) ([]CertificateRecord, error) {
	where, args := whereClause(opts, "issued_at")

	var q strings.Builder
	q.WriteString(`SELECT id, sequence, issued_at, name, score, video_id, title, session_id, path
		FROM certificates`)
	q.WriteString(where)
	q.WriteString(" ORDER BY sequence DESC")
	if opts.Limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query certificates: %w", err)
	}
	defer rows.Close()

	var out []CertificateRecord
	for rows.Next() {
		var rec CertificateRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Name, &rec.Score,
			&rec.VideoID, &rec.Title, &rec.SessionID, &rec.Path); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		if rec.IssuedAt, err = parseTime(ts); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
