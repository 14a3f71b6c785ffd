package id

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalid = errors.New("invalid id")

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets up the snowflake node. Each running process needs its own node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 ID.
func New() int64 {
	return node.Generate().Int64()
}

// Parse reads a decimal ID as it appears in URLs and JSON.
func Parse(s string) (int64, error) {
	sf, err := snowflake.ParseString(s)
	if err != nil || sf.Int64() <= 0 {
		return 0, ErrInvalid
	}
	return sf.Int64(), nil
}

func Format(v int64) string {
	return strconv.FormatInt(v, 10)
}
