package main

import (
	"fmt"

	"github.com/jztan/qt4-doc-mcp-server/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Documents: deps.Documents,
		Search:    deps.Search,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if c.HTTP != "" {
		deps.Logger.Info("serving over http", "addr", c.HTTP)
		return server.RunHTTP(deps.Ctx, c.HTTP)
	}

	deps.Logger.Info("serving over stdio")
	return server.Run(deps.Ctx)
}
