// Copyright (c) 2025 The Fabricsight Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package credstore is an on-disk credential cache for domain passwords
// referenced from the run configuration.
//
// Each entry is sealed independently with AES-GCM under a key derived
// from the store passphrase via scrypt; entries carry their own salt and
// nonce, so re-adding an entry never weakens the others. The file layout
// is an implementation detail and may change between releases.
package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/scrypt"

	ferrors "github.com/fabricsight/fabricsight/pkg/errors"
)

// scrypt parameters, interactive-login strength.
const (
	scryptN = 32768
	scryptR = 8
	scryptP = 1
	keyLen  = 32
	saltLen = 16
)

type entry struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// Store is an opened credential store. It is not safe for concurrent
// writers; collection resolves refs read-only.
type Store struct {
	path       string
	passphrase []byte
}

// Open binds a store to its file path and passphrase. The file need not
// exist yet; the first Put creates it with owner-only permissions.
func Open(path string, passphrase []byte) *Store {
	return &Store{path: path, passphrase: passphrase}
}

// Put seals a secret under ref, replacing any previous entry.
func (s *Store) Put(ref, secret string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	gcm, err := s.cipher(salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	entries[ref] = entry{
		Salt:  salt,
		Nonce: nonce,
		Data:  gcm.Seal(nil, nonce, []byte(secret), []byte(ref)),
	}
	return s.save(entries)
}

// Get opens the secret stored under ref.
func (s *Store) Get(ref string) (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}
	e, ok := entries[ref]
	if !ok {
		return "", ferrors.New(ferrors.ErrCodeNotFound,
			fmt.Sprintf("credential ref %q not in store", ref))
	}

	gcm, err := s.cipher(e.Salt)
	if err != nil {
		return "", err
	}
	plain, err := gcm.Open(nil, e.Nonce, e.Data, []byte(ref))
	if err != nil {
		return "", ferrors.Wrap(ferrors.ErrCodeUnauthorized,
			fmt.Sprintf("credential ref %q cannot be opened", ref), err)
	}
	return string(plain), nil
}

// Delete removes an entry; deleting a missing ref is not an error.
func (s *Store) Delete(ref string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	delete(entries, ref)
	return s.save(entries)
}

// Refs lists the stored entry names.
func (s *Store) Refs() ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(entries))
	for ref := range entries {
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *Store) cipher(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *Store) load() (map[string]entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInternal, "credential store is corrupt", err)
	}
	return entries, nil
}

func (s *Store) save(entries map[string]entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
