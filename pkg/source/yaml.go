package source

import (
	"context"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// DecodeEach decodes every node into T and calls f with the nodes that decode cleanly.
// Nodes that fail to decode are logged and skipped.
func DecodeEach[T any](ctx context.Context, what string, nodes []yaml.Node, f func(T)) {
	for i := range nodes {
		var v T
		if err := nodes[i].Decode(&v); err != nil {
			slog.DebugContext(ctx, "skipping a malformed entry", "what", what, "line", nodes[i].Line, "error", err)
			continue
		}
		f(v)
	}
}
