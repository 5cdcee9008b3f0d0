package whatsapp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

// folderPrefix is the naming convention for per-tenant credential folders.
const folderPrefix = "session-"

// CredentialStore is the persisted-credential boundary. The adapter writes
// session credentials itself; the lifecycle manager only lists tenants on
// recovery and removes folders on delete.
type CredentialStore interface {
	// ListTenants returns the tenant ids with persisted credentials.
	// A missing credential root means nothing to recover, not an error.
	ListTenants() ([]string, error)
	// Remove erases a tenant's credential folder. Idempotent; a missing
	// folder is not an error.
	Remove(tenantID string) error
}

// FolderStore discovers credentials as "session-<tenant>" directories under
// a root folder.
type FolderStore struct {
	root string
}

func NewFolderStore(root string) *FolderStore {
	return &FolderStore{root: root}
}

var _ CredentialStore = (*FolderStore)(nil)

// Path returns the credential folder for a tenant, creating nothing.
func (s *FolderStore) Path(tenantID string) string {
	return filepath.Join(s.root, folderPrefix+tenantID)
}

func (s *FolderStore) ListTenants() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.Wrapf(errs.ErrStorageFailure, "listing credential folders in %q: %v", s.root, err)
	}

	var tenants []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), folderPrefix) {
			continue
		}
		id := strings.TrimPrefix(e.Name(), folderPrefix)
		if id != "" {
			tenants = append(tenants, id)
		}
	}
	return tenants, nil
}

func (s *FolderStore) Remove(tenantID string) error {
	if err := validTenantID(tenantID); err != nil {
		return err
	}
	// RemoveAll treats a missing folder as success, which gives us the
	// idempotency the delete flow relies on.
	if err := os.RemoveAll(s.Path(tenantID)); err != nil {
		return errs.Wrapf(errs.ErrStorageFailure, "removing credential folder for %q: %v", tenantID, err)
	}
	return nil
}

// validTenantID rejects ids that would escape the credential root.
func validTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.Wrapf(errs.ErrInvalidRequest, "empty tenant id")
	}
	if strings.ContainsAny(tenantID, `/\`) || tenantID != filepath.Base(tenantID) {
		return fmt.Errorf("%w: invalid tenant id %q", errs.ErrInvalidRequest, tenantID)
	}
	return nil
}
