package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Protocol-Lattice/go-mission/src/memory/model"
)

// Neo4jGraph implements GraphStore on a Neo4j database. Memories are
// nodes labelled Memory; Link records typed relations between them.
type Neo4jGraph struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4jGraph(ctx context.Context, uri, username, password, database string) (*Neo4jGraph, error) {
	if uri == "" {
		return nil, errors.New("neo4j uri is required")
	}
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return &Neo4jGraph{driver: driver, database: database}, nil
}

func (g *Neo4jGraph) Upsert(ctx context.Context, record model.Record) error {
	session := g.session(ctx)
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
                MERGE (m:Memory {id: $id})
                SET m.mission_id = $mission, m.content = $content`,
		map[string]any{
			"id":      record.ID,
			"mission": record.MissionID,
			"content": record.Content,
		})
	return err
}

func (g *Neo4jGraph) Link(ctx context.Context, from, to int64, relation string) error {
	session := g.session(ctx)
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
                MERGE (a:Memory {id: $from})
                MERGE (b:Memory {id: $to})
                MERGE (a)-[r:RELATED {relation: $relation}]->(b)`,
		map[string]any{"from": from, "to": to, "relation": relation})
	return err
}

func (g *Neo4jGraph) Neighborhood(ctx context.Context, seedIDs []int64, hops, limit int) ([]model.Record, error) {
	if hops <= 0 {
		hops = 1
	}
	if limit <= 0 {
		limit = 10
	}

	session := g.session(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
                MATCH (a:Memory)-[*1..%d]-(b:Memory)
                WHERE a.id IN $seeds AND NOT b.id IN $seeds
                RETURN DISTINCT b.id AS id, b.mission_id AS mission_id, b.content AS content
                LIMIT $limit`, hops)
	result, err := session.Run(ctx, query, map[string]any{"seeds": seedIDs, "limit": limit})
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for result.Next(ctx) {
		rec := result.Record()
		out := model.Record{}
		if v, ok := rec.Get("id"); ok {
			if id, isInt := v.(int64); isInt {
				out.ID = id
			}
		}
		if v, ok := rec.Get("mission_id"); ok {
			out.MissionID, _ = v.(string)
		}
		if v, ok := rec.Get("content"); ok {
			out.Content, _ = v.(string)
		}
		records = append(records, out)
	}
	return records, result.Err()
}

func (g *Neo4jGraph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

func (g *Neo4jGraph) session(ctx context.Context) neo4j.SessionWithContext {
	return g.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: g.database})
}

var _ GraphStore = (*Neo4jGraph)(nil)
