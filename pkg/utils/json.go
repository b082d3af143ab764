package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson formata qualquer valor como JSON indentado com tabs.
// Bytes que não são JSON válido são devolvidos como texto.
func PrettyJson(in any) string {
	buffer, isRaw := in.([]byte)
	if !isRaw {
		var err error
		buffer, err = json.Marshal(in)
		if err != nil {
			return err.Error()
		}
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, buffer, "", "\t"); err != nil {
		return string(buffer)
	}

	return out.String()
}
