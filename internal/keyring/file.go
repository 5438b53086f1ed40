package keyring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"filippo.io/age"
)

const DefaultWorkFactor = 15

// File is an age-encrypted (scrypt passphrase) credential file.
type File struct {
	path       string
	passphrase string
	workFactor int
}

type entries map[string]map[string]string

// OpenFile returns the store at path. With reset the existing file is
// removed first, which is the only way to recover from a passphrase change.
func OpenFile(path, passphrase string, reset bool) (*File, error) {
	if passphrase == "" {
		return nil, errors.New("keyring passphrase must be defined")
	}
	if reset {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reset keyring: %w", err)
		}
	}
	return &File{path: path, passphrase: passphrase, workFactor: DefaultWorkFactor}, nil
}

// SetWorkFactor sets the scrypt work factor (log2 of N) used for new writes.
func (f *File) SetWorkFactor(logN int) {
	f.workFactor = logN
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Put(namespace, account, secret string) error {
	all, err := f.load()
	if err != nil {
		return err
	}
	if all[namespace] == nil {
		all[namespace] = make(map[string]string)
	}
	all[namespace][account] = secret
	return f.save(all)
}

func (f *File) Get(namespace, account string) (string, error) {
	all, err := f.load()
	if err != nil {
		return "", err
	}
	secret, ok := all[namespace][account]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, account)
	}
	return secret, nil
}

func (f *File) load() (entries, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(entries), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	identity, err := age.NewScryptIdentity(f.passphrase)
	if err != nil {
		return nil, fmt.Errorf("scrypt identity: %w", err)
	}
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypt keyring %s: %w", f.path, err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read decrypted keyring: %w", err)
	}

	all := make(entries)
	if err := json.Unmarshal(plain, &all); err != nil {
		return nil, fmt.Errorf("unmarshal keyring: %w", err)
	}
	return all, nil
}

func (f *File) save(all entries) error {
	plain, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal keyring: %w", err)
	}

	recipient, err := age.NewScryptRecipient(f.passphrase)
	if err != nil {
		return fmt.Errorf("scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(f.workFactor)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return fmt.Errorf("create encryptor: %w", err)
	}
	if _, err := w.Write(plain); err != nil {
		return fmt.Errorf("encrypt keyring: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize keyring: %w", err)
	}

	if err := os.WriteFile(f.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}
