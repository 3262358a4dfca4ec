/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"boxsvg/internal/vector"
)

// Entry is one persisted output file.
type Entry struct {
	ID         int64
	Time       time.Time
	Job        string // job file, empty for generated boxes
	Path       string
	Format     string // svg, png or pdf
	Shapes     int
	Primitives int
	Skipped    int
	Viewport   vector.Viewport
}

// RecordRender appends e to the history and returns its id. A zero Time is
// replaced with the current time.
func RecordRender(ctx context.Context, db *sql.DB, e Entry) (int64, error) {
	if e.Path == "" || e.Format == "" {
		return 0, errors.New("record render: path and format are required")
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	res, err := db.ExecContext(ctx, `INSERT INTO renders(ts, job, path, format, shapes, primitives, skipped, min_x, min_y, max_x, max_y)
		VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		e.Time.UTC().Format(time.RFC3339Nano), e.Job, e.Path, e.Format, e.Shapes, e.Primitives, e.Skipped,
		e.Viewport.MinX, e.Viewport.MinY, e.Viewport.MaxX, e.Viewport.MaxY)
	if err != nil {
		return 0, fmt.Errorf("record render: %w", err)
	}
	return res.LastInsertId()
}

// ListRenders returns the newest entries first. limit <= 0 returns all.
func ListRenders(ctx context.Context, db *sql.DB, limit int) ([]Entry, error) {
	q := `SELECT id, ts, COALESCE(job,''), path, format, shapes, primitives, skipped, min_x, min_y, max_x, max_y
		FROM renders ORDER BY ts DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Job, &e.Path, &e.Format, &e.Shapes, &e.Primitives, &e.Skipped,
			&e.Viewport.MinX, &e.Viewport.MinY, &e.Viewport.MaxX, &e.Viewport.MaxY); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Time = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PutThumb stores (or replaces) the PNG thumbnail of a render.
func PutThumb(ctx context.Context, db *sql.DB, renderID int64, w, h int, png []byte) error {
	if len(png) == 0 {
		return errors.New("put thumb: empty image")
	}
	_, err := db.ExecContext(ctx, `INSERT INTO thumbs(render_id, w, h, png) VALUES(?,?,?,?)
		ON CONFLICT(render_id) DO UPDATE SET w=excluded.w, h=excluded.h, png=excluded.png`, renderID, w, h, png)
	if err != nil {
		return fmt.Errorf("put thumb: %w", err)
	}
	return nil
}

// GetThumb returns the thumbnail of a render; ok is false when none is stored.
func GetThumb(ctx context.Context, db *sql.DB, renderID int64) (png []byte, w, h int, ok bool, err error) {
	err = db.QueryRowContext(ctx, `SELECT png, w, h FROM thumbs WHERE render_id=?`, renderID).Scan(&png, &w, &h)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, 0, false, nil
	}
	if err != nil {
		return nil, 0, 0, false, fmt.Errorf("get thumb: %w", err)
	}
	return png, w, h, true, nil
}
