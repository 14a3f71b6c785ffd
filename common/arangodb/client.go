package arangodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
)

var ErrNotFound = errors.New("document not found")

const (
	graphName        = "family"
	peopleCollection = "people"
	kinCollection    = "kin"
	maxDepth         = 4
)

type Client interface {
	EnsureDatabase(ctx context.Context) error
	EnsureCollections(ctx context.Context) error
	EnsureGraph(ctx context.Context) error

	UpsertPerson(ctx context.Context, p Person) error
	UpsertKin(ctx context.Context, k Kin) error
	RemoveKin(ctx context.Context, fromUserID, toUserID int64) error

	// Traverse walks the graph in both directions from userID up to depth hops.
	Traverse(ctx context.Context, userID int64, depth int) ([]TreeNode, []TreeEdge, error)

	Close() error
}

type Config struct {
	URL      string
	Username string
	Password string
	Database string
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("arangodb URL is required")
	}
	if c.Username == "" {
		return fmt.Errorf("arangodb username is required")
	}
	if c.Database == "" {
		return fmt.Errorf("arangodb database name is required")
	}
	return nil
}

type client struct {
	conn         connection.Connection
	arangoClient arangodb.Client
	db           arangodb.Database
	cfg          Config
}

func New(ctx context.Context, cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arangodb config: %w", err)
	}

	endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL})
	conn := connection.NewHttp2Connection(connection.DefaultHTTP2ConfigurationWrapper(endpoint, true))

	auth := connection.NewBasicAuth(cfg.Username, cfg.Password)
	if err := conn.SetAuthentication(auth); err != nil {
		return nil, fmt.Errorf("arangodb auth: %w", err)
	}

	return &client{
		conn:         conn,
		arangoClient: arangodb.NewClient(conn),
		cfg:          cfg,
	}, nil
}

// Setup prepares database, collections and graph in order.
func Setup(ctx context.Context, c Client) error {
	if err := c.EnsureDatabase(ctx); err != nil {
		return err
	}
	if err := c.EnsureCollections(ctx); err != nil {
		return err
	}
	return c.EnsureGraph(ctx)
}

func (c *client) Close() error {
	return nil
}

func (c *client) EnsureDatabase(ctx context.Context) error {
	start := time.Now()

	exists, err := c.arangoClient.DatabaseExists(ctx, c.cfg.Database)
	if err != nil {
		return fmt.Errorf("check database exists: %w", err)
	}

	if !exists {
		if _, err = c.arangoClient.CreateDatabase(ctx, c.cfg.Database, nil); err != nil {
			return fmt.Errorf("create database: %w", err)
		}
		slog.InfoContext(ctx, "arangodb database created",
			"database", c.cfg.Database,
			"duration_ms", time.Since(start).Milliseconds())
	}

	db, err := c.arangoClient.GetDatabase(ctx, c.cfg.Database, nil)
	if err != nil {
		return fmt.Errorf("get database: %w", err)
	}
	c.db = db

	return nil
}

func (c *client) EnsureCollections(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized, call EnsureDatabase first")
	}
	if err := c.ensureCollection(ctx, peopleCollection, false); err != nil {
		return err
	}
	return c.ensureCollection(ctx, kinCollection, true)
}

func (c *client) ensureCollection(ctx context.Context, name string, isEdge bool) error {
	exists, err := c.db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check collection %s exists: %w", name, err)
	}
	if exists {
		return nil
	}

	colType := arangodb.CollectionTypeDocument
	if isEdge {
		colType = arangodb.CollectionTypeEdge
	}
	if _, err = c.db.CreateCollectionV2(ctx, name, &arangodb.CreateCollectionPropertiesV2{Type: &colType}); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	slog.InfoContext(ctx, "arangodb collection created",
		"collection", name,
		"is_edge", isEdge)

	return nil
}

func (c *client) EnsureGraph(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized, call EnsureDatabase first")
	}

	exists, err := c.db.GraphExists(ctx, graphName)
	if err != nil {
		return fmt.Errorf("check graph exists: %w", err)
	}
	if exists {
		return nil
	}

	graphDef := &arangodb.GraphDefinition{
		Name: graphName,
		EdgeDefinitions: []arangodb.EdgeDefinition{
			{Collection: kinCollection, From: []string{peopleCollection}, To: []string{peopleCollection}},
		},
	}
	if _, err = c.db.CreateGraph(ctx, graphName, graphDef, nil); err != nil {
		return fmt.Errorf("create graph: %w", err)
	}

	slog.InfoContext(ctx, "arangodb graph created", "graph", graphName)
	return nil
}

func (c *client) UpsertPerson(ctx context.Context, p Person) error {
	query := `
		UPSERT { _key: @key }
			INSERT { _key: @key, user_id: @key, name: @name }
			UPDATE { name: @name }
			IN people
	`
	return c.exec(ctx, query, map[string]any{
		"key":  personKey(p.UserID),
		"name": p.Name,
	})
}

// UpsertKin writes the edge, inserting placeholder vertices for either end
// so that an edge never dangles.
func (c *client) UpsertKin(ctx context.Context, k Kin) error {
	query := `
		FOR key IN [@from, @to]
			UPSERT { _key: key }
				INSERT { _key: key, user_id: key, name: "" }
				UPDATE {}
				IN people
	`
	if err := c.exec(ctx, query, map[string]any{
		"from": personKey(k.FromUserID),
		"to":   personKey(k.ToUserID),
	}); err != nil {
		return err
	}

	query = `
		UPSERT { _key: @key }
			INSERT { _key: @key, _from: @from, _to: @to, from_id: @fromId, to_id: @toId, relationship: @rel, confirmed: @confirmed }
			UPDATE { relationship: @rel, confirmed: @confirmed }
			IN kin
	`
	return c.exec(ctx, query, map[string]any{
		"key":       kinKey(k.FromUserID, k.ToUserID),
		"from":      vertexID(k.FromUserID),
		"to":        vertexID(k.ToUserID),
		"fromId":    personKey(k.FromUserID),
		"toId":      personKey(k.ToUserID),
		"rel":       k.Relationship,
		"confirmed": k.Confirmed,
	})
}

func (c *client) RemoveKin(ctx context.Context, fromUserID, toUserID int64) error {
	query := `REMOVE { _key: @key } IN kin OPTIONS { ignoreErrors: true }`
	return c.exec(ctx, query, map[string]any{"key": kinKey(fromUserID, toUserID)})
}

func (c *client) Traverse(ctx context.Context, userID int64, depth int) ([]TreeNode, []TreeEdge, error) {
	if c.db == nil {
		return nil, nil, fmt.Errorf("database not initialized")
	}

	start := time.Now()
	depth = ClampDepth(depth)

	query := `
		FOR v, e, p IN 1..@depth ANY @start GRAPH "family"
			OPTIONS { order: "bfs", uniqueVertices: "global" }
			RETURN {
				vertex: { user_id: v.user_id, name: v.name },
				edge: { from_id: e.from_id, to_id: e.to_id, relationship: e.relationship },
				depth: LENGTH(p.edges)
			}
	`

	cursor, err := c.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]any{
			"start": vertexID(userID),
			"depth": depth,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("execute traversal: %w", err)
	}
	defer cursor.Close()

	var (
		nodes []TreeNode
		edges []TreeEdge
	)
	for cursor.HasMore() {
		var doc struct {
			Vertex struct {
				UserID string `json:"user_id"`
				Name   string `json:"name"`
			} `json:"vertex"`
			Edge struct {
				FromID       string `json:"from_id"`
				ToID         string `json:"to_id"`
				Relationship string `json:"relationship"`
			} `json:"edge"`
			Depth int `json:"depth"`
		}
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, nil, fmt.Errorf("read document: %w", err)
		}

		uid, err := strconv.ParseInt(doc.Vertex.UserID, 10, 64)
		if err != nil {
			continue
		}
		nodes = append(nodes, TreeNode{UserID: uid, Name: doc.Vertex.Name, Depth: doc.Depth})

		from, errFrom := strconv.ParseInt(doc.Edge.FromID, 10, 64)
		to, errTo := strconv.ParseInt(doc.Edge.ToID, 10, 64)
		if errFrom == nil && errTo == nil {
			edges = append(edges, TreeEdge{FromUserID: from, ToUserID: to, Relationship: doc.Edge.Relationship})
		}
	}

	slog.DebugContext(ctx, "arangodb family traversal completed",
		"user_id", userID,
		"depth", depth,
		"nodes", len(nodes),
		"edges", len(edges),
		"duration_ms", time.Since(start).Milliseconds())

	return nodes, edges, nil
}

func (c *client) exec(ctx context.Context, query string, bindVars map[string]any) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized")
	}
	cursor, err := c.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}
	return cursor.Close()
}

// ClampDepth bounds a requested traversal depth to 1..4.
func ClampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > maxDepth {
		return maxDepth
	}
	return depth
}

func personKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func vertexID(userID int64) string {
	return peopleCollection + "/" + personKey(userID)
}

func kinKey(from, to int64) string {
	return personKey(from) + "-" + personKey(to)
}
