package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador alfanumérico curto
func GenerateID() (string, error) {
	return GenerateIDWithSize(6)
}

// GenerateIDWithSize gera um identificador alfanumérico com o tamanho informado
func GenerateIDWithSize(size int) (string, error) {
	return gonanoid.Generate(characters, size)
}
