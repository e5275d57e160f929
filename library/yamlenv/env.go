package yamlenv

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env: скалярное значение конфигурации с подстановкой переменных окружения.
//
// Поддерживаются формы `${NAME}` и `${NAME:-default}`; остальной текст
// остаётся как есть. После подстановки строка разбирается в T через YAML.
type Env[T any] struct {
	Raw   string
	Value T
}

// New оборачивает готовое значение, например для значений по умолчанию.
func New[T any](v T) *Env[T] {
	return &Env[T]{Value: v}
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("yamlenv: line %d: expected scalar value", node.Line)
	}

	e.Raw = node.Value

	v, err := parse[T](Expand(node.Value))
	if err != nil {
		return fmt.Errorf("yamlenv: line %d: %w", node.Line, err)
	}

	e.Value = v

	return nil
}

// Get безопасен для nil: отсутствующее в файле поле даёт нулевое значение.
func (e *Env[T]) Get() T {
	if e == nil {
		var zero T
		return zero
	}

	return e.Value
}

func (e *Env[T]) String() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%v", e.Value)
}

// Expand подставляет переменные окружения в строку.
func Expand(s string) string {
	return os.Expand(s, func(key string) string {
		name, def, hasDefault := strings.Cut(key, ":-")
		if val, ok := os.LookupEnv(name); ok && val != "" {
			return val
		}
		if hasDefault {
			return def
		}

		return ""
	})
}

func parse[T any](s string) (T, error) {
	var out T

	if strings.TrimSpace(s) == "" {
		return out, nil
	}

	// строки не прогоняем через YAML, иначе "on"/"0755" и т.п. поменяют смысл
	if p, ok := any(&out).(*string); ok {
		*p = s
		return out, nil
	}

	if err := yaml.Unmarshal([]byte(s), &out); err != nil {
		return out, fmt.Errorf("parse %q: %w", s, err)
	}

	return out, nil
}
