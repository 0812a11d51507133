package http

import (
	"context"
	"strings"
	"sync"

	"github.com/itchyny/gojq"
)

var jqCodeCache sync.Map

// applyJQ evaluates a jq expression against a decoded response value. A
// single result collapses to itself, multiple results to an array.
func (g *PolarionGateway) applyJQ(ctx context.Context, payload any, expression string) (any, error) {
	trimmedExpression := strings.TrimSpace(expression)
	if trimmedExpression == "" || trimmedExpression == "." {
		return payload, nil
	}

	code, err := cachedJQCode(trimmedExpression)
	if err != nil {
		return nil, validationError("invalid jq expression", err)
	}

	runCtx := ctx
	if runCtx == nil {
		runCtx = context.Background()
	}
	iterator := code.RunWithContext(runCtx, payload)
	results := make([]any, 0, 1)
	for {
		value, ok := iterator.Next()
		if !ok {
			break
		}
		if valueErr, isErr := value.(error); isErr {
			return nil, validationError("failed to evaluate jq expression", valueErr)
		}
		results = append(results, value)
	}

	if len(results) == 0 {
		return nil, nil
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

func cachedJQCode(expression string) (*gojq.Code, error) {
	if cached, ok := jqCodeCache.Load(expression); ok {
		if typed, ok := cached.(*gojq.Code); ok && typed != nil {
			return typed, nil
		}
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, err
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, err
	}
	jqCodeCache.Store(expression, code)
	return code, nil
}
