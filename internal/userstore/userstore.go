// Package userstore implements the JSON-file-backed user directory used
// by the register and login handlers (spec §4.8). It replaces the
// original implementation's std::hash-based "hashing" (original_source's
// LoginHandler/RegisterHandler hash_password, which is not a real
// password hash) with golang.org/x/crypto/argon2, following the
// salted-Argon2id-with-constant-time-compare pattern the teacher uses
// for API key hashing (compozy's engine/auth/apikey/service.go) — spec
// §7's error taxonomy and §9's open question both call this out as an
// "opaque one-way function", which std::hash never was.
package userstore

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Store is a single JSON file mapping username to a salted Argon2id hash,
// guarded by a single writer mutex (spec §9's recommended resolution for
// concurrent registration/login against one file).
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a Store backed by the file at path. The file need not exist
// yet; it is created on first successful registration.
func New(path string) *Store {
	return &Store{path: path}
}

// Exists reports whether username is already registered.
func (s *Store) Exists(username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := users[username]
	return ok, nil
}

// Register adds username with password hashed and salted, failing if the
// username is already taken.
func (s *Store) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := users[username]; exists {
		return fmt.Errorf("username %q already exists", username)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	users[username] = hash
	return s.save(users)
}

// Verify reports whether password matches the stored hash for username.
func (s *Store) Verify(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return false, err
	}
	hash, ok := users[username]
	if !ok {
		return false, nil
	}
	return verifyPassword(password, hash), nil
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return make(map[string]string), nil
	}
	var users map[string]string
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user store: %w", err)
	}
	return users, nil
}

func (s *Store) save(users map[string]string) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write user store: %w", err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash), nil
}

func verifyPassword(password, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}
