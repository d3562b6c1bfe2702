package loaf

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON fails with ErrUninitialized on the zero value, which has
// no valid encoding.
func (v VecN[T, N]) MarshalJSON() ([]byte, error) {
	s, err := v.contents()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a JSON array, rejecting arrays shorter than N.
// v is left unchanged on error.
func (v *VecN[T, N]) UnmarshalJSON(data []byte) error {
	var s []T
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return v.replace("UnmarshalJSON", s)
}

func (v VecN[T, N]) MarshalYAML() (interface{}, error) {
	s, err := v.contents()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UnmarshalYAML decodes a YAML sequence, rejecting sequences shorter than N.
func (v *VecN[T, N]) UnmarshalYAML(node *yaml.Node) error {
	var s []T
	if err := node.Decode(&s); err != nil {
		return err
	}
	return v.replace("UnmarshalYAML", s)
}

// replace accepts the zero value but not a consumed vec.
func (v *VecN[T, N]) replace(op string, s []T) error {
	if v.consumed {
		panic(ErrReleased)
	}
	if n := mustPrefix[N](); len(s) < n {
		return &LengthError{Op: op, Have: len(s), Need: n}
	}
	v.inner = s
	return nil
}
