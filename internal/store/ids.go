package store

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

type IDGenerator interface {
	NewID() string
}

// SnowflakeGenerator hands out time-ordered ids that stay unique across
// processes as long as each one runs with its own node id.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}

	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NewID() string {
	return g.node.Generate().String()
}
