package models

import "math/rand/v2"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

// NewID генерирует короткий base-36 идентификатор для событий, фото и комментариев.
// Генератор не криптографический; коллизии не проверяются.
func NewID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
