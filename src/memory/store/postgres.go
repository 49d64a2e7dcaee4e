package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	json "github.com/alpkeskin/gotoon"

	"github.com/Protocol-Lattice/go-mission/src/memory/model"
)

// PostgresStore implements VectorStore on Postgres with the pgvector
// extension.
type PostgresStore struct {
	DB *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the backing table
// exists.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to Postgres: %w", err)
	}
	ps := &PostgresStore{DB: db}
	if err := ps.createSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return ps, nil
}

func (ps *PostgresStore) createSchema(ctx context.Context) error {
	_, err := ps.DB.Exec(ctx, `
                CREATE TABLE IF NOT EXISTS mission_memories (
                        id BIGSERIAL PRIMARY KEY,
                        mission_id TEXT NOT NULL,
                        content TEXT NOT NULL,
                        metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
                        embedding VECTOR(768),
                        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
                );`)
	return err
}

func (ps *PostgresStore) Store(ctx context.Context, missionID, content string, metadata map[string]any, embedding []float32) (int64, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return 0, err
	}

	var id int64
	err = ps.DB.QueryRow(ctx, `
                INSERT INTO mission_memories (mission_id, content, metadata, embedding)
                VALUES ($1, $2, $3::jsonb, $4::vector)
                RETURNING id;`,
		missionID, content, string(metaJSON), vectorLiteral(embedding)).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (ps *PostgresStore) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]model.Record, error) {
	rows, err := ps.DB.Query(ctx, `
                SELECT id, mission_id, content, metadata::text, created_at,
                       (embedding <-> $1::vector) AS distance
                FROM mission_memories
                ORDER BY embedding <-> $1::vector
                LIMIT $2;`,
		vectorLiteral(queryEmbedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		var metaText string
		var distance float64
		if err := rows.Scan(&rec.ID, &rec.MissionID, &rec.Content, &metaText, &rec.CreatedAt, &distance); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(metaText), &rec.Metadata)
		rec.Score = 1 - distance
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (ps *PostgresStore) Close(context.Context) error {
	ps.DB.Close()
	return nil
}

// vectorLiteral renders an embedding as a pgvector input literal.
func vectorLiteral(embedding []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

var _ VectorStore = (*PostgresStore)(nil)
