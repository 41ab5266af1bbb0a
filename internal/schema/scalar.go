package schema

import (
	"encoding/json"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// JSON accepts an object literal, an object variable, or a string holding
// JSON. It serializes values unchanged.
var JSON = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "Arbitrary JSON value. String inputs are decoded as JSON.",
	Serialize: func(value interface{}) interface{} {
		return value
	},
	ParseValue:   parseJSONValue,
	ParseLiteral: parseJSONLiteral,
})

func parseJSONValue(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	var out interface{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func parseJSONLiteral(value ast.Value) interface{} {
	if s, ok := value.(*ast.StringValue); ok {
		return parseJSONValue(s.Value)
	}
	return literalValue(value)
}

// literalValue converts a nested literal; strings are kept as strings.
func literalValue(value ast.Value) interface{} {
	switch v := value.(type) {
	case *ast.ObjectValue:
		out := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name.Value] = literalValue(f.Value)
		}
		return out
	case *ast.ListValue:
		out := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			out = append(out, literalValue(item))
		}
		return out
	case *ast.StringValue:
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		n, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil
		}
		return n
	case *ast.FloatValue:
		n, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil
		}
		return n
	}
	return nil
}
