package eventsource

import (
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// RequireString returns the string field named key.
func RequireString(payload *structpb.Struct, key string) (string, error) {
	v, ok := payload.GetFields()[key]
	if !ok {
		return "", NewInvalidArgumentf("%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", NewInvalidArgumentf("%s must be a string", key)
	}
	return s.StringValue, nil
}

// RequireNonEmptyString returns the string field named key, rejecting "".
func RequireNonEmptyString(payload *structpb.Struct, key string) (string, error) {
	s, err := RequireString(payload, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", NewInvalidArgumentf("%s must not be empty", key)
	}
	return s, nil
}

// OptionalString returns the string field named key, or "" when absent.
func OptionalString(payload *structpb.Struct, key string) string {
	return payload.GetFields()[key].GetStringValue()
}

// RequireInt returns the integral number field named key.
func RequireInt(payload *structpb.Struct, key string) (int, error) {
	v, ok := payload.GetFields()[key]
	if !ok {
		return 0, NewInvalidArgumentf("%s is required", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, NewInvalidArgumentf("%s must be a number", key)
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, NewInvalidArgumentf("%s must be an integer", key)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, NewInvalidArgumentf("%s is out of range", key)
	}
	return int(f), nil
}
