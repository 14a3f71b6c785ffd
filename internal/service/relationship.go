package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/store"
)

var (
	ErrSelfRelationship     = errors.New("cannot create a relationship with yourself")
	ErrRelationshipExists   = errors.New("relationship already exists")
	ErrRelationshipNotFound = errors.New("relationship not found")
	ErrOwnRequest           = errors.New("the other family member has to confirm this relationship")
)

const (
	TreeSourceGraph    = "graph"
	TreeSourceDatabase = "database"
)

// RelationshipView is one connection as its owner sees it.
type RelationshipView struct {
	Connection model.FamilyConnection
	Related    *model.User
}

type FamilyTreeNode struct {
	UserID       int64
	Name         string
	ProfileImage *string
	Depth        int
}

type FamilyTreeEdge struct {
	FromUserID   int64
	ToUserID     int64
	Relationship string
}

type FamilyTree struct {
	RootID int64
	Depth  int
	Source string
	Nodes  []FamilyTreeNode
	Edges  []FamilyTreeEdge
}

// TreeReader walks the projected family graph.
type TreeReader interface {
	Traverse(ctx context.Context, userID int64, depth int) ([]arangodb.TreeNode, []arangodb.TreeEdge, error)
}

type RelationshipService interface {
	// Add links userID to relatedUserID and writes the inverse edge in the same transaction.
	Add(ctx context.Context, actorID, userID, relatedUserID int64, relationship string) (*model.FamilyConnection, error)
	Confirm(ctx context.Context, actorID, userID, relatedUserID int64) error
	Remove(ctx context.Context, actorID, userID, relatedUserID int64) error
	List(ctx context.Context, userID int64) ([]RelationshipView, error)
	FamilyTree(ctx context.Context, userID int64, depth int) (*FamilyTree, error)
	ListWorkspaceRelations(ctx context.Context, actorID, workspaceID int64) ([]model.WorkspaceRelationship, error)
	// SetWorkspaceRelation records how memberID relates to actorID in the workspace.
	SetWorkspaceRelation(ctx context.Context, actorID, workspaceID, memberID int64, relation string) (*model.WorkspaceRelationship, error)
}

type relationshipService struct {
	connStore   store.FamilyConnectionStore
	userStore   store.UserStore
	memberStore store.WorkspaceMemberStore
	wsRelStore  store.WorkspaceRelationshipStore
	txRunner    TxRunner
	graph       TreeReader
	tasks       TaskEnqueuer
}

// NewRelationshipService builds the service. graph may be nil, in which
// case family trees come from direct connections only.
func NewRelationshipService(
	connStore store.FamilyConnectionStore,
	userStore store.UserStore,
	memberStore store.WorkspaceMemberStore,
	wsRelStore store.WorkspaceRelationshipStore,
	txRunner TxRunner,
	graph TreeReader,
	tasks TaskEnqueuer,
) RelationshipService {
	return &relationshipService{
		connStore:   connStore,
		userStore:   userStore,
		memberStore: memberStore,
		wsRelStore:  wsRelStore,
		txRunner:    txRunner,
		graph:       graph,
		tasks:       tasks,
	}
}

func (s *relationshipService) Add(ctx context.Context, actorID, userID, relatedUserID int64, relationship string) (*model.FamilyConnection, error) {
	if actorID != userID {
		return nil, ErrNotSelf
	}
	rel, err := model.ParseRelationship(relationship)
	if err != nil {
		return nil, err
	}
	if userID == relatedUserID {
		return nil, ErrSelfRelationship
	}

	var conn *model.FamilyConnection
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		for _, uid := range []int64{userID, relatedUserID} {
			if _, err := stores.Users().GetByID(ctx, uid); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrUserNotFound
				}
				return fmt.Errorf("getting user: %w", err)
			}
		}

		conn = &model.FamilyConnection{
			UserID:        userID,
			RelatedUserID: relatedUserID,
			Relationship:  rel,
			RequestedBy:   &userID,
		}
		mirror := &model.FamilyConnection{
			UserID:        relatedUserID,
			RelatedUserID: userID,
			Relationship:  rel.Inverse(),
			RequestedBy:   &userID,
		}
		for _, c := range []*model.FamilyConnection{conn, mirror} {
			if err := stores.FamilyConnections().Create(ctx, c); err != nil {
				if errors.Is(err, store.ErrConflict) {
					return ErrRelationshipExists
				}
				return fmt.Errorf("creating connection: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	enqueue(ctx, s.tasks, queue.GraphSyncTask(userID, relatedUserID, queue.GraphOpUpsert))

	slog.InfoContext(ctx, "relationship added",
		"user_id", userID,
		"related_user_id", relatedUserID,
		"relationship", rel)
	return conn, nil
}

// Confirm accepts a pending link on behalf of userID. Only the side that did
// not ask for the link may confirm it.
func (s *relationshipService) Confirm(ctx context.Context, actorID, userID, relatedUserID int64) error {
	if actorID != userID {
		return ErrNotSelf
	}
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		conn, err := stores.FamilyConnections().Get(ctx, userID, relatedUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRelationshipNotFound
			}
			return fmt.Errorf("getting connection: %w", err)
		}
		if conn.RequestedBy != nil && *conn.RequestedBy == userID {
			return ErrOwnRequest
		}
		for _, pair := range [][2]int64{{userID, relatedUserID}, {relatedUserID, userID}} {
			if err := stores.FamilyConnections().Confirm(ctx, pair[0], pair[1]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrRelationshipNotFound
				}
				return fmt.Errorf("confirming connection: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	enqueue(ctx, s.tasks, queue.GraphSyncTask(userID, relatedUserID, queue.GraphOpUpsert))

	slog.InfoContext(ctx, "relationship confirmed",
		"user_id", userID,
		"related_user_id", relatedUserID)
	return nil
}

func (s *relationshipService) Remove(ctx context.Context, actorID, userID, relatedUserID int64) error {
	if actorID != userID {
		return ErrNotSelf
	}
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.FamilyConnections().Delete(ctx, userID, relatedUserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRelationshipNotFound
			}
			return fmt.Errorf("deleting connection: %w", err)
		}
		// a missing mirror is tolerated so half-written legacy pairs can be cleaned up
		if err := stores.FamilyConnections().Delete(ctx, relatedUserID, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("deleting mirror connection: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	enqueue(ctx, s.tasks, queue.GraphSyncTask(userID, relatedUserID, queue.GraphOpDelete))

	slog.InfoContext(ctx, "relationship removed",
		"user_id", userID,
		"related_user_id", relatedUserID)
	return nil
}

func (s *relationshipService) List(ctx context.Context, userID int64) ([]RelationshipView, error) {
	conns, err := s.connStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	ids := make([]int64, len(conns))
	for i, c := range conns {
		ids[i] = c.RelatedUserID
	}
	byID, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]RelationshipView, len(conns))
	for i, c := range conns {
		views[i] = RelationshipView{Connection: c, Related: byID[c.RelatedUserID]}
	}
	return views, nil
}

func (s *relationshipService) FamilyTree(ctx context.Context, userID int64, depth int) (*FamilyTree, error) {
	depth = arangodb.ClampDepth(depth)

	root, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	tree := &FamilyTree{
		RootID: userID,
		Depth:  depth,
		Nodes:  []FamilyTreeNode{{UserID: root.ID, Name: root.Name, ProfileImage: root.ProfileImage}},
		Edges:  []FamilyTreeEdge{},
	}

	if s.graph != nil {
		nodes, edges, err := s.graph.Traverse(ctx, userID, depth)
		if err == nil {
			return s.fromGraph(ctx, tree, nodes, edges)
		}
		slog.WarnContext(ctx, "family graph traversal failed, using direct connections",
			"error", err,
			"user_id", userID)
	}

	conns, err := s.connStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	ids := make([]int64, len(conns))
	for i, c := range conns {
		ids[i] = c.RelatedUserID
	}
	byID, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	tree.Source = TreeSourceDatabase
	tree.Depth = 1
	for _, c := range conns {
		node := FamilyTreeNode{UserID: c.RelatedUserID, Depth: 1}
		if u := byID[c.RelatedUserID]; u != nil {
			node.Name = u.Name
			node.ProfileImage = u.ProfileImage
		}
		tree.Nodes = append(tree.Nodes, node)
		tree.Edges = append(tree.Edges, FamilyTreeEdge{
			FromUserID:   c.UserID,
			ToUserID:     c.RelatedUserID,
			Relationship: string(c.Relationship),
		})
	}
	return tree, nil
}

func (s *relationshipService) fromGraph(ctx context.Context, tree *FamilyTree, nodes []arangodb.TreeNode, edges []arangodb.TreeEdge) (*FamilyTree, error) {
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.UserID
	}
	byID, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	tree.Source = TreeSourceGraph
	for _, n := range nodes {
		node := FamilyTreeNode{UserID: n.UserID, Name: n.Name, Depth: n.Depth}
		if u := byID[n.UserID]; u != nil {
			node.Name = u.Name
			node.ProfileImage = u.ProfileImage
		}
		tree.Nodes = append(tree.Nodes, node)
	}
	for _, e := range edges {
		tree.Edges = append(tree.Edges, FamilyTreeEdge{
			FromUserID:   e.FromUserID,
			ToUserID:     e.ToUserID,
			Relationship: e.Relationship,
		})
	}
	return tree, nil
}

func (s *relationshipService) ListWorkspaceRelations(ctx context.Context, actorID, workspaceID int64) ([]model.WorkspaceRelationship, error) {
	if _, err := requireMember(ctx, s.memberStore, workspaceID, actorID); err != nil {
		return nil, err
	}
	rels, err := s.wsRelStore.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing workspace relationships: %w", err)
	}
	return rels, nil
}

func (s *relationshipService) SetWorkspaceRelation(ctx context.Context, actorID, workspaceID, memberID int64, relation string) (*model.WorkspaceRelationship, error) {
	rel, err := model.ParseRelationship(relation)
	if err != nil {
		return nil, err
	}
	if actorID == memberID {
		return nil, ErrSelfRelationship
	}

	var result *model.WorkspaceRelationship
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireMember(ctx, stores.WorkspaceMembers(), workspaceID, actorID); err != nil {
			return err
		}
		if _, err := stores.WorkspaceMembers().Get(ctx, workspaceID, memberID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("checking membership: %w", err)
		}

		result = &model.WorkspaceRelationship{
			WorkspaceID:   workspaceID,
			UserID:        actorID,
			RelatedUserID: memberID,
			Relation:      rel,
		}
		mirror := &model.WorkspaceRelationship{
			WorkspaceID:   workspaceID,
			UserID:        memberID,
			RelatedUserID: actorID,
			Relation:      rel.Inverse(),
		}
		for _, r := range []*model.WorkspaceRelationship{result, mirror} {
			if err := stores.WorkspaceRelationships().Upsert(ctx, r); err != nil {
				return fmt.Errorf("upserting workspace relationship: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "workspace relationship set",
		"workspace_id", workspaceID,
		"user_id", actorID,
		"related_user_id", memberID,
		"relation", rel)
	return result, nil
}

func (s *relationshipService) usersByID(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	byID := make(map[int64]*model.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	users, err := s.userStore.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}
