package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Mklevns/aletheia-phenom/pkg/aletheia"
)

func loadOrDefaultRunRequest(configPath string) (aletheia.RunRequest, error) {
	if configPath == "" {
		return aletheia.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return aletheia.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func loadRunRequestFromConfig(path string) (aletheia.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return aletheia.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return aletheia.RunRequest{}, err
	}

	var req aletheia.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["world"]); ok {
		req.World = v
	}
	if v, ok := asString(raw["agent"]); ok {
		req.Agent = v
	}
	if v, ok := asInt(raw["ticks"]); ok {
		req.Ticks = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asFloat64(raw["tps"]); ok {
		req.TPS = v
	}
	if m, ok := raw["params"].(map[string]any); ok {
		req.Params = make(map[string]string, len(m))
		for k, v := range m {
			req.Params[k] = paramString(v)
		}
	}
	return req, nil
}

// paramString renders a config param value the way it would be typed on the
// command line, so both sources go through the same coercion.
func paramString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
