package model

import (
	"errors"
	"strings"
	"time"
)

var ErrUnknownRelationship = errors.New("unknown relationship type")

type Relationship string

const (
	RelationshipParent      Relationship = "parent"
	RelationshipChild       Relationship = "child"
	RelationshipSibling     Relationship = "sibling"
	RelationshipSpouse      Relationship = "spouse"
	RelationshipGrandparent Relationship = "grandparent"
	RelationshipGrandchild  Relationship = "grandchild"
	RelationshipAuntUncle   Relationship = "aunt-uncle"
	RelationshipNieceNephew Relationship = "niece-nephew"
	RelationshipCousin      Relationship = "cousin"
	RelationshipOther       Relationship = "other"
)

var inverseRelationships = map[Relationship]Relationship{
	RelationshipParent:      RelationshipChild,
	RelationshipChild:       RelationshipParent,
	RelationshipSibling:     RelationshipSibling,
	RelationshipSpouse:      RelationshipSpouse,
	RelationshipGrandparent: RelationshipGrandchild,
	RelationshipGrandchild:  RelationshipGrandparent,
	RelationshipAuntUncle:   RelationshipNieceNephew,
	RelationshipNieceNephew: RelationshipAuntUncle,
	RelationshipCousin:      RelationshipCousin,
	RelationshipOther:       RelationshipOther,
}

// gendered and informal names accepted from older clients
var relationshipAliases = map[string]Relationship{
	"mother":        RelationshipParent,
	"father":        RelationshipParent,
	"mom":           RelationshipParent,
	"dad":           RelationshipParent,
	"son":           RelationshipChild,
	"daughter":      RelationshipChild,
	"brother":       RelationshipSibling,
	"sister":        RelationshipSibling,
	"husband":       RelationshipSpouse,
	"wife":          RelationshipSpouse,
	"partner":       RelationshipSpouse,
	"grandmother":   RelationshipGrandparent,
	"grandfather":   RelationshipGrandparent,
	"grandson":      RelationshipGrandchild,
	"granddaughter": RelationshipGrandchild,
	"aunt":          RelationshipAuntUncle,
	"uncle":         RelationshipAuntUncle,
	"aunt_uncle":    RelationshipAuntUncle,
	"niece":         RelationshipNieceNephew,
	"nephew":        RelationshipNieceNephew,
	"niece_nephew":  RelationshipNieceNephew,
}

// ParseRelationship maps user input onto a canonical relationship type.
func ParseRelationship(s string) (Relationship, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if r := Relationship(key); r.IsValid() {
		return r, nil
	}
	if r, ok := relationshipAliases[key]; ok {
		return r, nil
	}
	return "", ErrUnknownRelationship
}

func (r Relationship) IsValid() bool {
	_, ok := inverseRelationships[r]
	return ok
}

// Inverse returns how the other side of the edge sees this relationship:
// if A is B's parent, B is A's child.
func (r Relationship) Inverse() Relationship {
	if inv, ok := inverseRelationships[r]; ok {
		return inv
	}
	return RelationshipOther
}

// FamilyConnection is one directed half of a family edge. Every connection
// has a mirror row with the inverse relationship. Both halves carry the user
// who asked for the link; the other side is the one who confirms it.
type FamilyConnection struct {
	UserID        int64        `json:"user_id"`
	RelatedUserID int64        `json:"related_user_id"`
	Relationship  Relationship `json:"relationship"`
	Confirmed     bool         `json:"confirmed"`
	RequestedBy   *int64       `json:"requested_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

type WorkspaceRelationshipStatus string

const (
	WorkspaceRelationshipActive  WorkspaceRelationshipStatus = "active"
	WorkspaceRelationshipRemoved WorkspaceRelationshipStatus = "removed"
)

// WorkspaceRelationship records how RelatedUserID relates to UserID inside
// one workspace.
type WorkspaceRelationship struct {
	WorkspaceID   int64                       `json:"workspace_id"`
	UserID        int64                       `json:"user_id"`
	RelatedUserID int64                       `json:"related_user_id"`
	Relation      Relationship                `json:"relation"`
	Status        WorkspaceRelationshipStatus `json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}
