package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/klokku/utilization/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

var ErrNoCredentials = errors.New("no Google service account credentials configured")

// ValuesReader returns the cells of a sheet range as strings, header row first.
type ValuesReader interface {
	Read(ctx context.Context, spreadsheetId string, sheetRange string) ([][]string, error)
}

type ApiReader struct {
	service *gsheets.Service
}

// NewApiReader authenticates as the configured service account and returns a read-only reader.
func NewApiReader(ctx context.Context, cfg config.Google) (*ApiReader, error) {
	credentials, err := serviceAccountJson(cfg)
	if err != nil {
		return nil, err
	}
	jwtConfig, err := google.JWTConfigFromJSON(credentials, gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		err := fmt.Errorf("unable to parse service account credentials: %w", err)
		log.Error(err)
		return nil, err
	}
	service, err := gsheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		err := fmt.Errorf("unable to create Sheets client: %w", err)
		log.Error(err)
		return nil, err
	}
	log.Debugf("Sheets client ready for service account %s", jwtConfig.Email)
	return &ApiReader{service: service}, nil
}

func (r *ApiReader) Read(ctx context.Context, spreadsheetId string, sheetRange string) ([][]string, error) {
	resp, err := r.service.Spreadsheets.Values.Get(spreadsheetId, sheetRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to read %s from spreadsheet %s: %w", sheetRange, spreadsheetId, err)
		log.Error(err)
		return nil, err
	}
	return stringify(resp.Values), nil
}

func stringify(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := make([]string, len(v))
		for i, cell := range v {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// serviceAccountJson prefers inline credentials over the credentials file. Inline credentials
// stored in an environment variable often carry the private key with escaped newlines.
func serviceAccountJson(cfg config.Google) ([]byte, error) {
	if cfg.CredentialsJson != "" {
		return fixPrivateKey([]byte(cfg.CredentialsJson))
	}
	if cfg.CredentialsFile == "" {
		return nil, ErrNoCredentials
	}
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNoCredentials, cfg.CredentialsFile)
		}
		return nil, err
	}
	return data, nil
}

var escapedNewlines = strings.NewReplacer(`\\n`, "\n", `\n`, "\n")

func fixPrivateKey(data []byte) ([]byte, error) {
	var creds map[string]any
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("invalid inline credentials: %w", err)
	}
	if key, ok := creds["private_key"].(string); ok {
		creds["private_key"] = escapedNewlines.Replace(key)
	}
	return json.Marshal(creds)
}
