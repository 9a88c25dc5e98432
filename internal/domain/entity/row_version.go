package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RowVersionKey token opaco de concurrencia optimista. El backend lo expone
// como arreglo JSON de números (bytes del rowversion de SQL Server), no como
// base64, por eso el (un)marshal es a mano.
type RowVersionKey []byte

// MarshalJSON serializa como arreglo de números: [0,0,0,0,0,0,7,209].
func (k RowVersionKey) MarshalJSON() ([]byte, error) {
	if k == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range k {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(b)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON acepta null o un arreglo de números 0..255.
func (k *RowVersionKey) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*k = nil
		return nil
	}
	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	out := make([]byte, len(nums))
	for i, n := range nums {
		out[i] = byte(n)
	}
	*k = out
	return nil
}

// Equal compara dos tokens byte a byte; nil solo es igual a nil.
func (k RowVersionKey) Equal(other RowVersionKey) bool {
	if k == nil || other == nil {
		return k == nil && other == nil
	}
	return bytes.Equal(k, other)
}
