package course

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed examen.yaml
var examenYAML []byte

var loadExamen = sync.OnceValues(func() (*Data, error) {
	return Parse(examenYAML)
})

// Examen returns the embedded Ignatian Examen course. The table is decoded
// and validated once per process.
func Examen() (*Data, error) {
	return loadExamen()
}

func Parse(raw []byte) (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode course data: %w", err)
	}
	if err := Validate(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
