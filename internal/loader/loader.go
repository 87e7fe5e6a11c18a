// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"os"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"

	"github.com/tfctl/wbctl/internal/log"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// ErrNotEncrypted is returned by Decrypt for a plain document.
var ErrNotEncrypted = errors.New("snapshot is not encrypted")

const (
	metaKey       = "key_provider.pbkdf2.key"
	encryptedPath = "encrypted_data"
)

// KeyProvider holds the PBKDF2 parameters stored in an envelope.
type KeyProvider struct {
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	HashFunc   string `json:"hash_function"`
	KeyLength  int    `json:"key_length"`
}

// DefaultKeyProvider returns fresh parameters with a random salt.
func DefaultKeyProvider() (KeyProvider, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return KeyProvider{}, err
	}
	return KeyProvider{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Iterations: 600000,
		HashFunc:   "sha512",
		KeyLength:  32,
	}, nil
}

// maxIterations bounds the PBKDF2 work a stored envelope can ask for.
const maxIterations = 10_000_000

func (kp KeyProvider) key(passphrase string) ([]byte, error) {
	switch kp.KeyLength {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported key length %d", kp.KeyLength)
	}
	if kp.Iterations < 1 || kp.Iterations > maxIterations {
		return nil, fmt.Errorf("unsupported iteration count %d", kp.Iterations)
	}

	salt, err := base64.StdEncoding.DecodeString(kp.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	var h func() hash.Hash
	switch kp.HashFunc {
	case "sha256":
		h = sha256.New
	case "sha512", "":
		h = sha512.New
	default:
		return nil, fmt.Errorf("unsupported hash function %q", kp.HashFunc)
	}

	return pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, h), nil
}

// IsEncrypted reports whether doc is an envelope.
func IsEncrypted(doc []byte) bool {
	return gjson.GetBytes(doc, encryptedPath).Exists()
}

// Decrypt opens an envelope with passphrase.
func Decrypt(doc []byte, passphrase string) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, snapshot.ErrInvalidDocument
	}
	if !IsEncrypted(doc) {
		return nil, ErrNotEncrypted
	}

	kpRaw, err := base64.StdEncoding.DecodeString(gjson.GetBytes(doc, "meta").Get(gjson.Escape(metaKey)).String())
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kp KeyProvider
	if err := json.Unmarshal(kpRaw, &kp); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	key, err := kp.key(passphrase)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(gjson.GetBytes(doc, encryptedPath).String())
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short: expected at least %d bytes, got %d", nonceSize, len(ciphertext))
	}

	plaintext, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// Encrypt wraps plaintext in an envelope keyed by passphrase and kp.
func Encrypt(plaintext []byte, passphrase string, kp KeyProvider) ([]byte, error) {
	key, err := kp.key(passphrase)
	if err != nil {
		return nil, err
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	kpJSON, err := json.Marshal(kp)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]any{
		"meta":        map[string]string{metaKey: base64.StdEncoding.EncodeToString(kpJSON)},
		encryptedPath: base64.StdEncoding.EncodeToString(aesGCM.Seal(nonce, nonce, plaintext, nil)),
	})
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// PassphraseFunc supplies the passphrase when a document turns out to be
// encrypted.
type PassphraseFunc func() (string, error)

// Load parses doc, decrypting it first when it is an envelope.
func Load(doc []byte, passphrase PassphraseFunc) (*snapshot.Snapshot, error) {
	if IsEncrypted(doc) {
		if passphrase == nil {
			return nil, errors.New("snapshot is encrypted and no passphrase is available")
		}
		p, err := passphrase()
		if err != nil {
			return nil, fmt.Errorf("failed to get passphrase: %w", err)
		}
		if doc, err = Decrypt(doc, p); err != nil {
			return nil, err
		}
		log.Debugf("snapshot decrypted")
	}
	return snapshot.Parse(doc)
}

// Passphrase returns a PassphraseFunc that looks at the --passphrase flag,
// then WBCTL_PASSPHRASE, then prompts on the terminal. The answer is
// remembered so a pair of encrypted versions prompts only once.
func Passphrase(cmd *cli.Command) PassphraseFunc {
	var cached string
	return func() (string, error) {
		if cached != "" {
			return cached, nil
		}
		if cmd != nil {
			cached = cmd.String("passphrase")
		}
		if cached == "" {
			cached = os.Getenv("WBCTL_PASSPHRASE")
		}
		if cached == "" {
			p, err := prompt()
			if err != nil {
				return "", err
			}
			cached = p
		}
		return cached, nil
	}
}

// prompt reads a passphrase from the terminal without echo.
func prompt() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal to prompt for a passphrase")
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
