package cli

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/restmapper/mapping"
)

type operation struct {
	kind     mapping.Kind
	typeName string
	entity   mapping.Entity
}

// parseOperation reads "<kind> <type> [entity]". The entity is a YAML or
// JSON mapping; "-" reads it from stdin.
func parseOperation(args []string, stdin io.Reader) (operation, error) {
	kind, err := mapping.ParseKind(args[0])
	if err != nil {
		return operation{}, err
	}
	op := operation{kind: kind, typeName: args[1], entity: mapping.Entity{}}
	if len(args) < 3 {
		return op, nil
	}

	raw := args[2]
	if raw == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return operation{}, fmt.Errorf("read entity: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) == "" {
		return op, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &op.entity); err != nil {
		return operation{}, fmt.Errorf("parse entity: %w", err)
	}
	if op.entity == nil {
		op.entity = mapping.Entity{}
	}
	return op, nil
}
