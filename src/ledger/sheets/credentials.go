package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/oauth2/google"
)

// Scopes requested for the service account. Drive is needed to open a spreadsheet by title.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// Credential sources, reported in logs.
const (
	sourceEnv  = "env"
	sourceFile = "file"
)

var errNoCredentials = errors.New("no credentials found (env var or file)")

// credentialsJSON returns the service account key. The environment blob takes
// precedence over the key file; a missing file is not an error unless both are absent.
func credentialsJSON(envBlob, keyFile string) ([]byte, string, error) {
	if envBlob != "" {
		return []byte(envBlob), sourceEnv, nil
	}
	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err == nil {
			return data, sourceFile, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("reading credentials file %s: %w", keyFile, err)
		}
	}
	return nil, "", errNoCredentials
}

func loadCredentials(ctx context.Context, envBlob, keyFile string) (*google.Credentials, string, error) {
	data, source, err := credentialsJSON(envBlob, keyFile)
	if err != nil {
		return nil, "", err
	}
	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s credentials: %w", source, err)
	}
	return creds, source, nil
}
