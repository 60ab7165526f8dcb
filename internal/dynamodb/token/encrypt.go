package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"mealmaster.app/planner/internal/exceptions"
)

const INVALID_TOKEN = "nextToken is not a valid page token"

type EncryptMode func(cipher.Block) (cipher.AEAD, error)

type EncryptionTokenMarshaler struct {
	Mode   EncryptMode
	Secret []byte
}

// NewGCM seals page tokens with AES-GCM. The key is derived from the secret
// and the owning account, so a token only opens for the user it was issued to.
func NewGCM(secret string) *EncryptionTokenMarshaler {
	return &EncryptionTokenMarshaler{
		Mode:   cipher.NewGCM,
		Secret: []byte(secret),
	}
}

// keyPart is one attribute of a last evaluated key. Only the scalar types
// that can appear in a table or index key are carried.
type keyPart struct {
	S *string `json:"s,omitempty"`
	N *string `json:"n,omitempty"`
	B []byte  `json:"b,omitempty"`
}

func _flatten(lastKey map[string]types.AttributeValue) map[string]keyPart {
	parts := make(map[string]keyPart, len(lastKey))
	for name, value := range lastKey {
		switch v := value.(type) {
		case *types.AttributeValueMemberS:
			parts[name] = keyPart{S: &v.Value}
		case *types.AttributeValueMemberN:
			parts[name] = keyPart{N: &v.Value}
		case *types.AttributeValueMemberB:
			parts[name] = keyPart{B: v.Value}
		}
	}
	return parts
}

func _expand(parts map[string]keyPart) map[string]types.AttributeValue {
	lastKey := make(map[string]types.AttributeValue, len(parts))
	for name, part := range parts {
		switch {
		case part.S != nil:
			lastKey[name] = &types.AttributeValueMemberS{Value: *part.S}
		case part.N != nil:
			lastKey[name] = &types.AttributeValueMemberN{Value: *part.N}
		case part.B != nil:
			lastKey[name] = &types.AttributeValueMemberB{Value: part.B}
		}
	}
	return lastKey
}

func (em *EncryptionTokenMarshaler) _aead(accountId string) (cipher.AEAD, error) {
	digest := sha256.New()
	digest.Write(em.Secret)
	digest.Write([]byte(accountId))
	block, err := aes.NewCipher(digest.Sum(nil))
	if err != nil {
		return nil, err
	}
	return em.Mode(block)
}

// Marshal returns nil when there is no further page. Otherwise the token is
// the URL safe encoding of nonce followed by the sealed key.
func (em *EncryptionTokenMarshaler) Marshal(accountId string, lastKey map[string]types.AttributeValue) ([]byte, error) {
	if len(lastKey) == 0 {
		return nil, nil
	}
	plaintext, err := json.Marshal(_flatten(lastKey))
	if err != nil {
		return nil, err
	}
	aead, err := em._aead(accountId)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	token := make([]byte, base64.RawURLEncoding.EncodedLen(len(sealed)))
	base64.RawURLEncoding.Encode(token, sealed)
	return token, nil
}

// Unmarshal rejects anything it did not seal for the same account as bad
// input, never as a server failure.
func (em *EncryptionTokenMarshaler) Unmarshal(accountId string, token []byte) (map[string]types.AttributeValue, error) {
	if len(token) == 0 {
		return nil, nil
	}
	sealed := make([]byte, base64.RawURLEncoding.DecodedLen(len(token)))
	n, err := base64.RawURLEncoding.Decode(sealed, token)
	if err != nil {
		return nil, exceptions.InvalidInput(INVALID_TOKEN)
	}
	sealed = sealed[:n]
	aead, err := em._aead(accountId)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, exceptions.InvalidInput(INVALID_TOKEN)
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, exceptions.InvalidInput(INVALID_TOKEN)
	}
	var parts map[string]keyPart
	if err := json.Unmarshal(plaintext, &parts); err != nil {
		return nil, exceptions.InvalidInput(INVALID_TOKEN)
	}
	return _expand(parts), nil
}
