package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jobradar/jobradar/internal/models"
)

// SaveSource inserts or replaces a user-defined source.
func (s *Store) SaveSource(ctx context.Context, src models.EmailSource) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources (id, name, sender_email, sender_pattern, subject_keywords, category, parser, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sender_email = excluded.sender_email,
			sender_pattern = excluded.sender_pattern,
			subject_keywords = excluded.subject_keywords,
			category = excluded.category,
			parser = excluded.parser,
			enabled = excluded.enabled`,
		src.ID, src.Name, src.SenderEmail, src.SenderPattern,
		strings.Join(src.SubjectKeywords, ","), src.Category, src.Parser,
		boolInt(src.Enabled),
	)
	return err
}

// ListSources returns all persisted source definitions.
func (s *Store) ListSources(ctx context.Context) ([]models.EmailSource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sender_email, sender_pattern, subject_keywords, category, parser, enabled
		FROM sources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []models.EmailSource
	for rows.Next() {
		var src models.EmailSource
		var email, pattern, keywords, category, parser sql.NullString
		var enabled int
		if err := rows.Scan(&src.ID, &src.Name, &email, &pattern, &keywords, &category, &parser, &enabled); err != nil {
			return nil, err
		}
		src.SenderEmail = email.String
		src.SenderPattern = pattern.String
		if keywords.String != "" {
			src.SubjectKeywords = strings.Split(keywords.String, ",")
		}
		src.Category = category.String
		src.Parser = parser.String
		src.Enabled = enabled != 0
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// SetSourceEnabled flips the enabled flag for a persisted source.
func (s *Store) SetSourceEnabled(ctx context.Context, id string, enabled bool) error {
	res, err := s.db.ExecContext(ctx, "UPDATE sources SET enabled = ? WHERE id = ?", boolInt(enabled), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("source %s: %w", id, ErrNotFound)
	}
	return nil
}
