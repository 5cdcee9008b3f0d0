package auth

import (
	"context"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/internal/mainapi"
)

// MainAPIVerifier verifies credentials against the main business API.
type MainAPIVerifier struct {
	api *mainapi.Client
}

func NewMainAPIVerifier(api *mainapi.Client) *MainAPIVerifier {
	return &MainAPIVerifier{api: api}
}

var _ CredentialsVerifier = (*MainAPIVerifier)(nil)

func (v *MainAPIVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	resp, err := v.api.VerifyCredentials(ctx, username, password)
	if err != nil {
		return false, errs.Wrapf(err, "main API credential check")
	}
	return resp.Access, nil
}
