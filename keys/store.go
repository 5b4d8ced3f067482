package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// KeyStore is a simple local-first store for Ed25519 seeds, used by the CLI
// to keep one root key per local account name plus deterministic
// role-derived subkeys.
//
// Layout: <dir>/<name>/root.key and <dir>/<name>/roles/<role>.key, each file
// one hex-encoded 32-byte seed, mode 0600.
type KeyStore struct {
	Directory string
}

// KeyEntry lists one stored account and its derived roles.
type KeyEntry struct {
	Name  string
	Roles []string
}

// DefaultDirectory returns the default key store location.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".xdao", "deid", "keys"), nil
}

// OpenKeyStore opens (or designates) a key store directory. An empty
// directory selects the default location.
func OpenKeyStore(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

// CheckLocalName validates a local account name for the store: non-empty,
// [A-Za-z0-9_-] only.
func CheckLocalName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in name", char)
	}
	return nil
}

// DeriveRoleSeed deterministically derives a role-specific Ed25519 seed from
// a root seed.
func DeriveRoleSeed(rootSeed []byte, role string) ([]byte, error) {
	if len(rootSeed) != ed25519.SeedSize {
		return nil, fmt.Errorf("root seed must be %d bytes", ed25519.SeedSize)
	}
	if err := CheckLocalName(role); err != nil {
		return nil, err
	}

	h := sha256.New()
	_, _ = h.Write(rootSeed)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("xdao-deid-kms-lite-v1"))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("role:"))
	_, _ = h.Write([]byte(role))
	sum := h.Sum(nil)
	out := make([]byte, ed25519.SeedSize)
	copy(out, sum[:ed25519.SeedSize])
	return out, nil
}

// ParseSeedHex parses a hex-encoded 32-byte Ed25519 seed, with or without a
// 0x prefix.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func (ks *KeyStore) rootKeyPath(name string) string {
	return filepath.Join(ks.Directory, name, "root.key")
}

func (ks *KeyStore) roleKeyPath(name, role string) string {
	return filepath.Join(ks.Directory, name, "roles", role+".key")
}

func (ks *KeyStore) saveSeed(filePath string, seed []byte, overwrite bool) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(filePath, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (ks *KeyStore) loadSeed(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

// InitializeRootKey stores seed as the root key for name and returns the
// printable public key string and the file path written.
func (ks *KeyStore) InitializeRootKey(name string, seed []byte, overwrite bool) (pubKey string, filePath string, err error) {
	if err := CheckLocalName(name); err != nil {
		return "", "", err
	}
	filePath = ks.rootKeyPath(name)
	if err := ks.saveSeed(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pubKey, err = PublicKeyString(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return "", "", err
	}
	return pubKey, filePath, nil
}

// DeriveRoleKey derives and stores a role subkey of an existing root key.
func (ks *KeyStore) DeriveRoleKey(from, role string, overwrite bool) (pubKey string, filePath string, err error) {
	if err := CheckLocalName(from); err != nil {
		return "", "", err
	}
	rootSeed, err := ks.loadSeed(ks.rootKeyPath(from))
	if err != nil {
		return "", "", err
	}
	roleSeed, err := DeriveRoleSeed(rootSeed, role)
	if err != nil {
		return "", "", err
	}
	filePath = ks.roleKeyPath(from, role)
	if err := ks.saveSeed(filePath, roleSeed, overwrite); err != nil {
		return "", "", err
	}
	priv := ed25519.NewKeyFromSeed(roleSeed)
	pubKey, err = PublicKeyString(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return "", "", err
	}
	return pubKey, filePath, nil
}

// SignKey loads the stored seed for name (root key when role is empty) and
// returns it as an Ed25519 sign key.
func (ks *KeyStore) SignKey(name, role string) (SignKey, error) {
	if err := CheckLocalName(name); err != nil {
		return nil, err
	}
	path := ks.rootKeyPath(name)
	if role != "" {
		if err := CheckLocalName(role); err != nil {
			return nil, err
		}
		path = ks.roleKeyPath(name, role)
	}
	seed, err := ks.loadSeed(path)
	if err != nil {
		return nil, err
	}
	return NewEd25519SignKey(seed)
}

// ListKeys enumerates stored accounts and their roles in sorted order.
func (ks *KeyStore) ListKeys() ([]KeyEntry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var result []KeyEntry
	for _, name := range names {
		rolesDir := filepath.Join(ks.Directory, name, "roles")
		roleEntries, rerr := os.ReadDir(rolesDir)
		var roles []string
		if rerr == nil {
			for _, roleEntry := range roleEntries {
				if roleEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(roleEntry.Name(), ".key") {
					roles = append(roles, strings.TrimSuffix(roleEntry.Name(), ".key"))
				}
			}
			sort.Strings(roles)
		}
		result = append(result, KeyEntry{Name: name, Roles: roles})
	}
	return result, nil
}
