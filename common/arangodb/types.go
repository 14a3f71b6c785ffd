package arangodb

// Person is a vertex in the family graph. IDs travel as strings since
// snowflake values exceed the float64 range ArangoDB uses for numbers.
type Person struct {
	UserID int64
	Name   string
}

// Kin is a directed edge: To is Relationship of From.
type Kin struct {
	FromUserID   int64
	ToUserID     int64
	Relationship string
	Confirmed    bool
}

type TreeNode struct {
	UserID int64
	Name   string
	Depth  int
}

type TreeEdge struct {
	FromUserID   int64
	ToUserID     int64
	Relationship string
}
