package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const EnvPrefix = "UTILIZATION_"

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
	Report   Report   `koanf:"report"`
}

// Google holds the service account used to read the utilization spreadsheets.
type Google struct {
	CredentialsFile     string `koanf:"credentialsfile"`
	CredentialsJson     string `koanf:"credentialsjson"`
	HoursSpreadsheetId  string `koanf:"hoursspreadsheetid"`
	HoursSheet          string `koanf:"hourssheet"`
	InputsSpreadsheetId string `koanf:"inputsspreadsheetid"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Report holds the defaults applied when a request does not choose a projection method.
type Report struct {
	DefaultMethod string `koanf:"defaultmethod"`
	BySemester    bool   `koanf:"bysemester"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:8181",
		Port: 8181,
		Google: Google{
			CredentialsFile: "secrets/gs_credentials.json",
			HoursSheet:      "Sheet1",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "utilization",
			Pass:   "",
			Name:   "utilization",
			Schema: "utilization",
		},
		Report: Report{
			DefaultMethod: "year_to_date",
			BySemester:    false,
		},
	}
}

// Load reads configuration from struct defaults, then the YAML file at path, then a .env file
// in the working directory, then UTILIZATION_* environment variables. Later sources win.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Errorf("error loading .env file: %v", err)
			return Application{}, err
		}
	} else {
		log.Debug("Loaded environment from .env")
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// SheetsEnabled reports whether enough Google settings are present to sync from spreadsheets.
func (a Application) SheetsEnabled() bool {
	if a.Google.HoursSpreadsheetId == "" || a.Google.InputsSpreadsheetId == "" {
		return false
	}
	if a.Google.CredentialsJson != "" {
		return true
	}
	_, err := os.Stat(a.Google.CredentialsFile)
	return err == nil
}
