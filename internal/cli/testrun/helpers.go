package testrun

import (
	"fmt"
	"strings"

	"github.com/newmesstuff/go-polarion/service"
)

func parseParameters(raw []string) ([]service.Parameter, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	parameters := make([]service.Parameter, 0, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", entry)
		}
		parameters = append(parameters, service.Parameter{
			Name:  strings.TrimSpace(name),
			Value: value,
		})
	}
	return parameters, nil
}
