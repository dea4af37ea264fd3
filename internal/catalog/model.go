package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Money is a price as the backend sends it: usually a JSON number,
// sometimes a quoted decimal string. Anything that does not parse as a
// finite number decodes to zero so totals never see NaN.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}

	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			*m = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*m = 0
		return nil
	}
	*m = Money(f)
	return nil
}

// ColorList normalizes the backend's dynamically typed color field.
// Historically it has arrived as a JSON array, a plain string, or a
// string containing a JSON-encoded array; every shape becomes one
// canonical ordered list of non-empty strings here, so nothing past
// this boundary branches on type.
type ColorList []string

func (c *ColorList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*c = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*c = compactColors(arr)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		single = strings.TrimSpace(single)
		// a string that itself holds a JSON array
		if strings.HasPrefix(single, "[") {
			var nested []string
			if err := json.Unmarshal([]byte(single), &nested); err == nil {
				*c = compactColors(nested)
				return nil
			}
		}
		*c = compactColors([]string{single})
		return nil
	}

	*c = nil
	return nil
}

func compactColors(in []string) ColorList {
	out := make(ColorList, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Contains reports whether color is one of the declared variants.
func (c ColorList) Contains(color string) bool {
	for _, v := range c {
		if v == color {
			return true
		}
	}
	return false
}

type CategoriaRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Categoria struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Producto struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Price       Money        `json:"price"`
	Image       string       `json:"image"`
	Color       ColorList    `json:"color"`
	Marca       string       `json:"marca"`
	Descripcion string       `json:"descripcion"`
	Categoria   CategoriaRef `json:"categoria"`
}
